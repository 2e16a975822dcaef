package sheets

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
)

func TestParseRow(t *testing.T) {
	row := []interface{}{"2025-06-18 09:30:00", "expense", "Food", "Lunch", "150.00", "user-1"}

	tx, err := parseRow(row)
	if err != nil {
		t.Fatalf("parseRow() error: %v", err)
	}
	if tx.Type != domain.TypeExpense {
		t.Errorf("type = %q", tx.Type)
	}
	if tx.CategoryOrSource != "Food" || tx.Description != "Lunch" {
		t.Errorf("fields = %q/%q", tx.CategoryOrSource, tx.Description)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("amount = %s, want 150", tx.Amount)
	}
	if tx.UserID != "user-1" {
		t.Errorf("user ID = %q", tx.UserID)
	}
	if got := tx.Timestamp.Hour(); got != 9 {
		t.Errorf("hour = %d, want 9", got)
	}
}

func TestParseRow_MissingUserID(t *testing.T) {
	row := []interface{}{"2025-06-18 09:30:00", "income", "Salary", "pay", "5000"}

	tx, err := parseRow(row)
	if err != nil {
		t.Fatalf("parseRow() error: %v", err)
	}
	if tx.UserID != "" {
		t.Errorf("user ID = %q, want empty", tx.UserID)
	}
}

func TestParseRow_Malformed(t *testing.T) {
	tests := []struct {
		name string
		row  []interface{}
	}{
		{"too short", []interface{}{"2025-06-18 09:30:00", "expense"}},
		{"bad timestamp", []interface{}{"yesterday", "expense", "Food", "Lunch", "150"}},
		{"bad type", []interface{}{"2025-06-18 09:30:00", "transfer", "Food", "Lunch", "150"}},
		{"bad amount", []interface{}{"2025-06-18 09:30:00", "expense", "Food", "Lunch", "lots"}},
		{"empty amount", []interface{}{"2025-06-18 09:30:00", "expense", "Food", "Lunch", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRow(tt.row); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseRow_ToleratesFormatting(t *testing.T) {
	row := []interface{}{"2025-06-18 09:30:00", "Expense", "Food", "Groceries", "₱1,250.50", "user-1"}

	tx, err := parseRow(row)
	if err != nil {
		t.Fatalf("parseRow() error: %v", err)
	}
	if !tx.Amount.Equal(decimal.NewFromFloat(1250.50)) {
		t.Errorf("amount = %s, want 1250.5", tx.Amount)
	}
	if tx.Type != domain.TypeExpense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
}

func TestIsHeaderRow(t *testing.T) {
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if !isHeaderRow(header) {
		t.Error("expected header row to be recognized")
	}

	data := []interface{}{"2025-06-18 09:30:00", "expense", "Food", "Lunch", "150", "u"}
	if isHeaderRow(data) {
		t.Error("data row misidentified as header")
	}

	if isHeaderRow([]interface{}{"timestamp"}) {
		t.Error("short row misidentified as header")
	}
}

func TestColumnsOrder(t *testing.T) {
	want := "timestamp,transaction_type,category_or_source,description,amount,user_id"
	if got := strings.Join(Columns, ","); got != want {
		t.Errorf("columns = %s", got)
	}
}
