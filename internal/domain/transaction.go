// Package domain holds the core transaction model shared by the conversation
// engine, the report engine, and the record store adapter.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one recorded income or expense entry. Records are immutable
// once appended to the log.
type Transaction struct {
	// Timestamp is the moment the entry was logged, in the Manila calendar.
	Timestamp time.Time

	Type TransactionType

	// CategoryOrSource is the expense category when Type is expense, or the
	// income source when Type is income.
	CategoryOrSource string

	Description string

	// Amount is always positive; the Type carries the direction.
	Amount decimal.Decimal

	// UserID is the opaque chat participant identifier.
	UserID string
}

// Validate checks the record invariants before it is persisted.
func (tx *Transaction) Validate() error {
	if !tx.Type.Valid() {
		return fmt.Errorf("invalid transaction type: %q", tx.Type)
	}
	if strings.TrimSpace(tx.CategoryOrSource) == "" {
		return fmt.Errorf("category or source cannot be empty")
	}
	if strings.TrimSpace(tx.Description) == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive: %s", tx.Amount)
	}
	if tx.UserID == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	return nil
}
