package conversation

// State identifies where a user is in the logging or stats dialogue.
type State string

const (
	StateIdle                      State = "idle"
	StateWaitingExpenseCategory    State = "waiting_expense_category"
	StateWaitingExpenseDescription State = "waiting_expense_description"
	StateWaitingExpenseAmount      State = "waiting_expense_amount"
	StateWaitingIncomeSource       State = "waiting_income_source"
	StateWaitingIncomeDescription  State = "waiting_income_description"
	StateWaitingIncomeAmount       State = "waiting_income_amount"
	StateWaitingStatsPeriod        State = "waiting_stats_period"
)

// Session holds one user's conversation state and the partial entry collected
// so far. Fields belonging to a flow are only meaningful while its state is
// active; Reset clears everything.
type Session struct {
	State              State
	ExpenseCategory    string
	ExpenseDescription string
	IncomeSource       string
	IncomeDescription  string
}

// Reset returns the session to idle and discards any partial entry.
func (s *Session) Reset() {
	s.State = StateIdle
	s.ExpenseCategory = ""
	s.ExpenseDescription = ""
	s.IncomeSource = ""
	s.IncomeDescription = ""
}
