// Package report computes period-bounded financial summaries over the
// transaction log and renders them for the chat channel and the spreadsheet
// report view. All currency math uses fixed-point decimals rounded to
// 2 decimal places at computation boundaries.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

const currencySymbol = "₱"

// titheRate is the recommended giving rate applied to total income.
var titheRate = decimal.NewFromFloat(0.10)

// CategoryTotal is an amount aggregated under one category or source name.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// Summary holds every computed metric for one reporting period.
type Summary struct {
	Period           timeutil.Period
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetSavings       decimal.Decimal
	SavingsRate      float64 // meaningful only when HasSavingsRate
	HasSavingsRate   bool
	Tithe            decimal.Decimal // meaningful only when HasTithe
	HasTithe         bool
	TransactionCount int

	BiggestExpense    *domain.Transaction
	TopCategory       *CategoryTotal
	IncomeBySource    []CategoryTotal
	ExpenseByCategory []CategoryTotal
}

// Summarize filters records to the period ending at now and aggregates them.
// The input order is preserved for the biggest-expense tie-break; breakdown
// ordering is descending by total with a lexicographic tie-break on name.
func Summarize(records []domain.Transaction, period timeutil.Period, now time.Time) Summary {
	s := Summary{
		Period:       period,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		NetSavings:   decimal.Zero,
	}

	var income, expenses []domain.Transaction
	for _, tx := range records {
		if !period.Contains(tx.Timestamp, now) {
			continue
		}
		switch tx.Type {
		case domain.TypeIncome:
			income = append(income, tx)
		case domain.TypeExpense:
			expenses = append(expenses, tx)
		default:
			continue
		}
		s.TransactionCount++
	}

	for _, tx := range income {
		s.TotalIncome = s.TotalIncome.Add(tx.Amount)
	}
	for _, tx := range expenses {
		s.TotalExpense = s.TotalExpense.Add(tx.Amount)
	}
	s.TotalIncome = s.TotalIncome.Round(2)
	s.TotalExpense = s.TotalExpense.Round(2)
	s.NetSavings = s.TotalIncome.Sub(s.TotalExpense)

	if s.TotalIncome.IsPositive() {
		rate, _ := s.NetSavings.Div(s.TotalIncome).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		s.SavingsRate = rate
		s.HasSavingsRate = true
		s.Tithe = s.TotalIncome.Mul(titheRate).Round(2)
		s.HasTithe = true
	}

	for i := range expenses {
		if s.BiggestExpense == nil || expenses[i].Amount.GreaterThan(s.BiggestExpense.Amount) {
			s.BiggestExpense = &expenses[i]
		}
	}

	s.IncomeBySource = breakdown(income)
	s.ExpenseByCategory = breakdown(expenses)
	if len(s.ExpenseByCategory) > 0 {
		s.TopCategory = &s.ExpenseByCategory[0]
	}

	return s
}

// breakdown sums amounts per category name, descending by total, ties broken
// lexicographically so the result is stable.
func breakdown(records []domain.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range records {
		totals[tx.CategoryOrSource] = totals[tx.CategoryOrSource].Add(tx.Amount)
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{Name: name, Total: total.Round(2)})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equal(result[j].Total) {
			return result[i].Total.GreaterThan(result[j].Total)
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Generate produces the formatted text report for the period, or a short
// "no transactions" message when the filtered set is empty.
func Generate(records []domain.Transaction, period timeutil.Period, now time.Time) string {
	s := Summarize(records, period, now)
	if s.TransactionCount == 0 {
		return fmt.Sprintf("📊 *%s Financial Summary*\n\nNo transactions found for this period. Start logging your income and expenses to see insights!", period)
	}
	return Render(s)
}

// Render builds the chat-facing report text from a computed summary.
func Render(s Summary) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("📊 *%s Financial Summary*", s.Period))
	lines = append(lines, strings.Repeat("=", 30))

	lines = append(lines, "💰 *OVERVIEW*")
	lines = append(lines, "Total Income: "+FormatCurrency(s.TotalIncome))
	lines = append(lines, "Total Expenses: "+FormatCurrency(s.TotalExpense))
	lines = append(lines, "Net Savings: "+FormatCurrency(s.NetSavings))
	if s.HasSavingsRate {
		lines = append(lines, fmt.Sprintf("Savings Rate: %.1f%%", s.SavingsRate))
	}
	lines = append(lines, fmt.Sprintf("Transactions Logged: %d", s.TransactionCount))
	lines = append(lines, "")

	if len(s.IncomeBySource) > 0 {
		lines = append(lines, "💼 *INCOME SOURCES*")
		for _, item := range top(s.IncomeBySource, 3) {
			lines = append(lines, fmt.Sprintf("• %s: %s", item.Name, FormatCurrency(item.Total)))
		}
		lines = append(lines, "")
	}

	if len(s.ExpenseByCategory) > 0 {
		lines = append(lines, "💸 *EXPENSE CATEGORIES*")
		for _, item := range top(s.ExpenseByCategory, 3) {
			lines = append(lines, fmt.Sprintf("• %s: %s", item.Name, FormatCurrency(item.Total)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "🔍 *KEY INSIGHTS*")
	if s.BiggestExpense != nil {
		lines = append(lines, fmt.Sprintf("Biggest Expense: %s (%s)", FormatCurrency(s.BiggestExpense.Amount), s.BiggestExpense.Description))
	}
	if s.TopCategory != nil {
		lines = append(lines, fmt.Sprintf("Top Spending Category: %s (%s)", s.TopCategory.Name, FormatCurrency(s.TopCategory.Total)))
	}
	if s.HasTithe {
		lines = append(lines, "Suggested Tithe (10%): "+FormatCurrency(s.Tithe))
	}

	lines = append(lines, "")
	switch s.NetSavings.Sign() {
	case 1:
		lines = append(lines, "✅ Great job! You're saving money this period.")
	case 0:
		lines = append(lines, "⚖️ You're breaking even this period.")
	default:
		lines = append(lines, "⚠️ You're spending more than you earn this period.")
	}

	lines = append(lines, "")
	lines = append(lines, "Keep tracking to build better financial habits! 💪")

	return strings.Join(lines, "\n")
}

func top(items []CategoryTotal, n int) []CategoryTotal {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// FormatCurrency renders an amount with the peso glyph, thousands separators,
// and exactly 2 decimal places.
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return currencySymbol + sign + b.String() + "." + frac
}
