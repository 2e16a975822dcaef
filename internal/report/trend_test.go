package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

func dailyExpenses(amounts []float64, now time.Time) []domain.Transaction {
	// One expense per day, oldest first, ending the day before now.
	var records []domain.Transaction
	for i, amount := range amounts {
		ts := now.AddDate(0, 0, -(len(amounts) - i))
		records = append(records, tx(domain.TypeExpense, "Food", "Meals", amount, ts))
	}
	return records
}

func TestSpendingTrend_Rising(t *testing.T) {
	records := dailyExpenses([]float64{100, 100, 200, 200}, refNow)

	trend := SpendingTrend(records, 30, refNow)

	if trend.Direction != 1 {
		t.Errorf("Direction = %d, want 1", trend.Direction)
	}
	// Halves average 100 and 200: strength (200-100)/100 = 1.0.
	if trend.Strength != 1.0 {
		t.Errorf("Strength = %v, want 1.0", trend.Strength)
	}
	if !trend.DailyAverage.Equal(decimal.NewFromInt(150)) {
		t.Errorf("DailyAverage = %s, want 150", trend.DailyAverage)
	}
}

func TestSpendingTrend_Falling(t *testing.T) {
	records := dailyExpenses([]float64{300, 300, 150, 150}, refNow)

	trend := SpendingTrend(records, 30, refNow)
	if trend.Direction != -1 {
		t.Errorf("Direction = %d, want -1", trend.Direction)
	}
	if trend.Strength != 0.5 {
		t.Errorf("Strength = %v, want 0.5", trend.Strength)
	}
}

func TestSpendingTrend_TooFewDays(t *testing.T) {
	records := dailyExpenses([]float64{100, 200, 300}, refNow)

	trend := SpendingTrend(records, 30, refNow)
	if trend.Direction != 0 || trend.Strength != 0 {
		t.Errorf("short window should be flat, got direction=%d strength=%v", trend.Direction, trend.Strength)
	}
	if !trend.DailyAverage.Equal(decimal.NewFromInt(200)) {
		t.Errorf("DailyAverage = %s, want 200", trend.DailyAverage)
	}
}

func TestSpendingTrend_NoExpenses(t *testing.T) {
	records := []domain.Transaction{
		tx(domain.TypeIncome, "Salary", "Pay", 1000, refNow.Add(-time.Hour)),
	}

	trend := SpendingTrend(records, 30, refNow)
	if !trend.DailyAverage.IsZero() || trend.Direction != 0 {
		t.Errorf("no expenses should yield a zero trend, got %+v", trend)
	}
}

func TestSpendingTrend_IgnoresOldExpenses(t *testing.T) {
	records := []domain.Transaction{
		tx(domain.TypeExpense, "Food", "Ancient", 9999, refNow.AddDate(0, 0, -60)),
		tx(domain.TypeExpense, "Food", "Recent", 100, refNow.AddDate(0, 0, -1)),
	}

	trend := SpendingTrend(records, 30, refNow)
	if !trend.DailyAverage.Equal(decimal.NewFromInt(100)) {
		t.Errorf("DailyAverage = %s, want 100 (old expense outside window)", trend.DailyAverage)
	}
}

func TestBudgetRecommendations(t *testing.T) {
	records := []domain.Transaction{
		// 900 on Food over 90 days: 300/month + 10% = 330.
		tx(domain.TypeExpense, "Food", "Groceries", 450, refNow.AddDate(0, 0, -10)),
		tx(domain.TypeExpense, "Food", "Groceries", 450, refNow.AddDate(0, 0, -40)),
		// 300 on Transportation: 100/month + 10% = 110.
		tx(domain.TypeExpense, "Transportation", "Commute", 300, refNow.AddDate(0, 0, -20)),
		// Outside the 90-day window, must not count.
		tx(domain.TypeExpense, "Food", "Old", 5000, refNow.AddDate(0, 0, -120)),
		// Income never counts toward budgets.
		tx(domain.TypeIncome, "Salary", "Pay", 10000, refNow.AddDate(0, 0, -10)),
	}

	got := BudgetRecommendations(records, refNow)

	if len(got) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got))
	}
	if got[0].Name != "Food" || !got[0].Total.Equal(decimal.NewFromInt(330)) {
		t.Errorf("got[0] = %s %s, want Food 330", got[0].Name, got[0].Total)
	}
	if got[1].Name != "Transportation" || !got[1].Total.Equal(decimal.NewFromInt(110)) {
		t.Errorf("got[1] = %s %s, want Transportation 110", got[1].Name, got[1].Total)
	}
}

func TestBuildView_Empty(t *testing.T) {
	rows := BuildView(nil, refNow)

	joined := flatten(rows)
	if !strings.Contains(joined, "No transactions recorded yet") {
		t.Errorf("empty view missing placeholder text:\n%s", joined)
	}
}

func TestBuildView_GroupsAndTotals(t *testing.T) {
	records := []domain.Transaction{
		tx(domain.TypeIncome, "Salary", "Pay", 1000, refNow.AddDate(0, 0, -1).Add(-time.Hour)),
		tx(domain.TypeExpense, "Food", "Lunch", 250, refNow.Add(-time.Hour)),
	}

	rows := BuildView(records, refNow)
	joined := flatten(rows)

	for _, want := range []string{
		"📅 Generated: " + timeutil.FormatTimestamp(refNow),
		"💰 Income",
		"💸 Expense",
		"Daily Summary:",
		"📊 OVERALL SUMMARY",
		"₱1,000.00",
		"₱250.00",
		"Net: ", // per-day net line
		"🙏 Suggested Tithe (10%):",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("view missing %q\nview:\n%s", want, joined)
		}
	}

	// Newest day must come first.
	lunchIdx := strings.Index(joined, "Lunch")
	payIdx := strings.Index(joined, "Pay")
	if lunchIdx == -1 || payIdx == -1 || lunchIdx > payIdx {
		t.Errorf("expected today's transactions before yesterday's in the view")
	}
}

func flatten(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, " | "))
		b.WriteByte('\n')
	}
	return b.String()
}
