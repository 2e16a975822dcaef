package conversation

import (
	"strings"

	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// Menu payloads sent by the persistent menu, the get-started button and the
// main-menu quick replies.
const (
	PayloadGetStarted = "GET_STARTED"
	PayloadLogExpense = "LOG_EXPENSE"
	PayloadLogIncome  = "LOG_INCOME"
	PayloadViewStats  = "VIEW_STATS"
)

// expenseCategories maps CATEGORY_* payload tags to their display labels.
// Order here drives the quick-reply layout.
var expenseCategories = []struct {
	Payload string
	Label   string
}{
	{"CATEGORY_FOOD", "Food"},
	{"CATEGORY_TRANSPORT", "Transportation"},
	{"CATEGORY_HOUSING", "Housing"},
	{"CATEGORY_SHOPPING", "Shopping"},
	{"CATEGORY_UTILITIES", "Utilities"},
	{"CATEGORY_ENTERTAINMENT", "Entertainment"},
	{"CATEGORY_HEALTHCARE", "Healthcare"},
	{"CATEGORY_EDUCATION", "Education"},
	{"CATEGORY_OTHER", "Other"},
}

// incomeSources maps SOURCE_* payload tags to their display labels.
var incomeSources = []struct {
	Payload string
	Label   string
}{
	{"SOURCE_SALARY", "Salary"},
	{"SOURCE_FREELANCE", "Freelance"},
	{"SOURCE_BUSINESS", "Business"},
	{"SOURCE_GIFT", "Gift"},
	{"SOURCE_INVESTMENT", "Investment"},
	{"SOURCE_REFUND", "Refund"},
	{"SOURCE_OTHER", "Other"},
}

// statsPeriods maps PERIOD_* payload tags to report periods.
var statsPeriods = []struct {
	Payload string
	Period  timeutil.Period
}{
	{"PERIOD_TODAY", timeutil.PeriodToday},
	{"PERIOD_WEEK", timeutil.PeriodWeek},
	{"PERIOD_MONTH", timeutil.PeriodMonth},
}

type selectionKind int

const (
	selUnknown selectionKind = iota
	selMenu
	selCategory
	selSource
	selPeriod
)

type decodedSelection struct {
	kind   selectionKind
	menu   string          // selMenu: one of the Payload* constants
	label  string          // selCategory, selSource: display label
	period timeutil.Period // selPeriod
}

// decodeSelection classifies a payload tag. Unknown tags decode to selUnknown
// and never affect conversation state.
func decodeSelection(payload string) decodedSelection {
	switch payload {
	case PayloadGetStarted, PayloadLogExpense, PayloadLogIncome, PayloadViewStats:
		return decodedSelection{kind: selMenu, menu: payload}
	}
	if strings.HasPrefix(payload, "CATEGORY_") {
		for _, c := range expenseCategories {
			if c.Payload == payload {
				return decodedSelection{kind: selCategory, label: c.Label}
			}
		}
		return decodedSelection{kind: selUnknown}
	}
	if strings.HasPrefix(payload, "SOURCE_") {
		for _, s := range incomeSources {
			if s.Payload == payload {
				return decodedSelection{kind: selSource, label: s.Label}
			}
		}
		return decodedSelection{kind: selUnknown}
	}
	if strings.HasPrefix(payload, "PERIOD_") {
		for _, p := range statsPeriods {
			if p.Payload == payload {
				return decodedSelection{kind: selPeriod, period: p.Period}
			}
		}
		// Unrecognized period tags still run a report over the default
		// trailing window rather than stalling the flow.
		return decodedSelection{kind: selPeriod, period: timeutil.Period(payload)}
	}
	return decodedSelection{kind: selUnknown}
}
