package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

const viewTitle = "💰 MESSENGER WALLET BOT - TRANSACTION REPORT"

// BuildView renders the whole transaction log as the rows of the
// human-readable report worksheet: transactions grouped by day, newest day
// first, with per-day and overall summaries. The view is derived data and is
// rebuilt from scratch on every call.
func BuildView(records []domain.Transaction, generatedAt time.Time) [][]string {
	rows := [][]string{
		{viewTitle},
		{"📅 Generated: " + timeutil.FormatTimestamp(generatedAt)},
		{},
	}

	if len(records) == 0 {
		rows = append(rows,
			[]string{"📝 No transactions recorded yet."},
			[]string{},
			[]string{"💡 Start logging your income and expenses by chatting with the bot!"},
		)
		return rows
	}

	rows = append(rows,
		[]string{"Date", "Type", "Category/Source", "Description", "Amount (" + currencySymbol + ")"},
		[]string{},
	)

	byDay := make(map[string][]domain.Transaction)
	for _, tx := range records {
		day := timeutil.StartOfDay(tx.Timestamp).Format("2006-01-02")
		byDay[day] = append(byDay[day], tx)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for _, day := range days {
		dayTxs := byDay[day]
		sort.SliceStable(dayTxs, func(i, j int) bool {
			return dayTxs[i].Timestamp.Before(dayTxs[j].Timestamp)
		})

		header := timeutil.StartOfDay(dayTxs[0].Timestamp).Format("Monday, January 02, 2006")
		rows = append(rows, []string{"📅 " + header})

		dailyIncome := decimal.Zero
		dailyExpense := decimal.Zero
		for _, tx := range dayTxs {
			emoji := "💸"
			label := "Expense"
			if tx.Type == domain.TypeIncome {
				emoji = "💰"
				label = "Income"
				dailyIncome = dailyIncome.Add(tx.Amount)
				totalIncome = totalIncome.Add(tx.Amount)
			} else {
				dailyExpense = dailyExpense.Add(tx.Amount)
				totalExpense = totalExpense.Add(tx.Amount)
			}

			rows = append(rows, []string{
				"  " + tx.Timestamp.In(timeutil.Manila).Format("15:04"),
				emoji + " " + label,
				tx.CategoryOrSource,
				tx.Description,
				FormatCurrency(tx.Amount),
			})
		}

		dailyNet := dailyIncome.Sub(dailyExpense)
		netIndicator := "📈"
		if dailyNet.IsNegative() {
			netIndicator = "📉"
		}
		rows = append(rows,
			[]string{},
			[]string{
				"    Daily Summary:",
				"Income: " + FormatCurrency(dailyIncome),
				"Expenses: " + FormatCurrency(dailyExpense),
				fmt.Sprintf("%s Net: %s", netIndicator, FormatCurrency(dailyNet)),
			},
			[]string{},
		)
	}

	overallNet := totalIncome.Sub(totalExpense)
	netStatus := "Surplus 📈"
	if overallNet.IsNegative() {
		netStatus = "Deficit 📉"
	}

	rows = append(rows,
		[]string{"────────────────────────────"},
		[]string{"📊 OVERALL SUMMARY"},
		[]string{"💰 Total Income:", FormatCurrency(totalIncome)},
		[]string{"💸 Total Expenses:", FormatCurrency(totalExpense)},
		[]string{"📊 Net Amount:", FormatCurrency(overallNet), "(" + netStatus + ")"},
	)

	if totalIncome.IsPositive() {
		rate := overallNet.Div(totalIncome).Mul(decimal.NewFromInt(100)).Round(1)
		tithe := totalIncome.Mul(titheRate).Round(2)
		rows = append(rows,
			[]string{},
			[]string{"📈 Savings Rate:", rate.String() + "%"},
			[]string{"🙏 Suggested Tithe (10%):", FormatCurrency(tithe)},
		)
	}

	return rows
}
