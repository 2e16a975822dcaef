package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// Trend describes the direction of daily expense totals over a trailing
// window, comparing the second half of the window against the first.
type Trend struct {
	DailyAverage decimal.Decimal
	// Direction is 1 when spending is rising, -1 when falling, 0 when flat
	// or when there are too few days to tell.
	Direction int
	// Strength is |second half avg - first half avg| / first half avg.
	// Zero when the first half average is zero.
	Strength float64
}

// SpendingTrend buckets expenses by civil day over the trailing number of
// days ending at now and scores the trend.
func SpendingTrend(records []domain.Transaction, days int, now time.Time) Trend {
	cutoff := now.In(timeutil.Manila).AddDate(0, 0, -days)

	buckets := make(map[string]decimal.Decimal)
	for _, tx := range records {
		if tx.Type != domain.TypeExpense || tx.Timestamp.Before(cutoff) {
			continue
		}
		day := timeutil.StartOfDay(tx.Timestamp).Format("2006-01-02")
		buckets[day] = buckets[day].Add(tx.Amount)
	}

	if len(buckets) == 0 {
		return Trend{DailyAverage: decimal.Zero}
	}

	dayKeys := make([]string, 0, len(buckets))
	for day := range buckets {
		dayKeys = append(dayKeys, day)
	}
	sort.Strings(dayKeys)

	daily := make([]decimal.Decimal, len(dayKeys))
	total := decimal.Zero
	for i, day := range dayKeys {
		daily[i] = buckets[day]
		total = total.Add(buckets[day])
	}

	t := Trend{
		DailyAverage: total.Div(decimal.NewFromInt(int64(len(daily)))).Round(2),
	}

	// Too few buckets to split meaningfully.
	if len(daily) < 4 {
		return t
	}

	mid := len(daily) / 2
	firstAvg := average(daily[:mid])
	secondAvg := average(daily[mid:])

	switch secondAvg.Cmp(firstAvg) {
	case 1:
		t.Direction = 1
	case -1:
		t.Direction = -1
	}
	if firstAvg.IsPositive() {
		t.Strength, _ = secondAvg.Sub(firstAvg).Abs().Div(firstAvg).Float64()
	}

	return t
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(values))))
}

// BudgetRecommendations suggests a per-category monthly budget: the average
// monthly spend over the trailing 90 days plus a 10% buffer. Results are
// ordered like breakdowns, descending by amount.
func BudgetRecommendations(records []domain.Transaction, now time.Time) []CategoryTotal {
	cutoff := now.In(timeutil.Manila).AddDate(0, 0, -90)
	buffer := decimal.NewFromFloat(1.1)
	months := decimal.NewFromInt(3)

	var recent []domain.Transaction
	for _, tx := range records {
		if tx.Type == domain.TypeExpense && !tx.Timestamp.Before(cutoff) {
			recent = append(recent, tx)
		}
	}

	totals := breakdown(recent)
	for i := range totals {
		totals[i].Total = totals[i].Total.Div(months).Mul(buffer).Round(2)
	}
	return totals
}
