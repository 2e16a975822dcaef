package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when free text cannot be read as a monetary
// amount inside the accepted range.
var ErrInvalidAmount = errors.New("invalid amount")

// MaxAmount is the upper bound for a single transaction.
var MaxAmount = decimal.NewFromInt(1_000_000)

// amountCleaner strips currency symbols, thousands separators, and whitespace
// before the numeric parse.
var amountCleaner = strings.NewReplacer(
	"₱", "", // peso sign
	"$", "",
	",", "",
	" ", "",
	"\t", "",
	"\n", "",
	"\r", "",
)

// ParseAmount turns free text like "₱1,500.50" into a validated amount.
// Valid amounts are strictly positive, at most 1,000,000, and rounded to
// 2 decimal places. Anything else returns ErrInvalidAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(text)
	if cleaned == "" {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	return amount.Round(2), nil
}
