package conversation

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/jobs"
	"github.com/keanlouis30/MessengerWalletSystem/internal/messenger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/report"
	"github.com/keanlouis30/MessengerWalletSystem/internal/timeutil"
)

// Sender delivers outbound messages to a user. *messenger.Client satisfies it.
type Sender interface {
	SendText(ctx context.Context, userID, text string) error
	SendQuickReplies(ctx context.Context, userID, text string, replies []messenger.QuickReply) error
	SendTyping(ctx context.Context, userID string) error
}

// Ledger persists and reads back transactions. *sheets.Store satisfies it.
type Ledger interface {
	AppendTransaction(ctx context.Context, tx domain.Transaction) error
	ReadAllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// Engine drives the conversation state machine. One Engine serves all users;
// per-user serialization comes from the session store.
type Engine struct {
	sessions *SessionStore
	sender   Sender
	ledger   Ledger
	rebuilds jobs.Publisher
	now      func() time.Time
	log      zerolog.Logger
}

// NewEngine creates a conversation engine. publisher may be nil, in which
// case report view rebuilds are skipped.
func NewEngine(sender Sender, ledger Ledger, publisher jobs.Publisher, log zerolog.Logger) *Engine {
	return &Engine{
		sessions: NewSessionStore(),
		sender:   sender,
		ledger:   ledger,
		rebuilds: publisher,
		now:      timeutil.Now,
		log:      log,
	}
}

// HandleEvent processes one inbound event. Errors from outbound sends are
// logged, not returned: Messenger has already accepted the delivery and a
// retry would double-process the event.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) {
	userID := ev.User()
	if userID == "" {
		e.log.Warn().Msg("event without sender ID, skipping")
		return
	}

	if err := e.sender.SendTyping(ctx, userID); err != nil {
		e.log.Debug().Err(err).Str("user_id", userID).Msg("typing indicator failed")
	}

	e.sessions.With(userID, func(s *Session) {
		switch ev := ev.(type) {
		case Selection:
			e.handleSelection(ctx, userID, s, ev.Payload)
		case FreeText:
			e.handleText(ctx, userID, s, strings.TrimSpace(ev.Text))
		case Unsupported:
			e.send(ctx, userID, unsupportedText)
		default:
			e.log.Warn().Str("user_id", userID).Msg("unknown event type")
		}
	})
}

func (e *Engine) handleSelection(ctx context.Context, userID string, s *Session, payload string) {
	sel := decodeSelection(payload)

	switch sel.kind {
	case selMenu:
		switch sel.menu {
		case PayloadGetStarted:
			s.Reset()
			e.sendWelcome(ctx, userID)
		case PayloadLogExpense:
			s.Reset()
			s.State = StateWaitingExpenseCategory
			e.sendReplies(ctx, userID, expenseStartText, ExpenseCategoryReplies())
		case PayloadLogIncome:
			s.Reset()
			s.State = StateWaitingIncomeSource
			e.sendReplies(ctx, userID, incomeStartText, IncomeSourceReplies())
		case PayloadViewStats:
			s.Reset()
			s.State = StateWaitingStatsPeriod
			e.sendReplies(ctx, userID, statsStartText, StatsPeriodReplies())
		}

	case selCategory:
		if s.State != StateWaitingExpenseCategory {
			e.send(ctx, userID, errorText(errGeneral))
			return
		}
		s.ExpenseCategory = sel.label
		s.State = StateWaitingExpenseDescription
		e.send(ctx, userID, categoryConfirmText(sel.label))

	case selSource:
		if s.State != StateWaitingIncomeSource {
			e.send(ctx, userID, errorText(errGeneral))
			return
		}
		s.IncomeSource = sel.label
		s.State = StateWaitingIncomeDescription
		e.send(ctx, userID, sourceConfirmText(sel.label))

	case selPeriod:
		if s.State != StateWaitingStatsPeriod {
			e.send(ctx, userID, errorText(errGeneral))
			return
		}
		e.sendReport(ctx, userID, s, sel.period)

	default:
		e.log.Warn().Str("user_id", userID).Str("payload", payload).Msg("unhandled quick reply payload")
		e.send(ctx, userID, errorText(errGeneral))
	}
}

func (e *Engine) handleText(ctx context.Context, userID string, s *Session, text string) {
	switch s.State {
	case StateIdle:
		e.handleIdleText(ctx, userID, s, text)

	case StateWaitingExpenseDescription:
		if utf8.RuneCountInString(text) < 2 {
			e.send(ctx, userID, errorText(errMissingDescription))
			return
		}
		s.ExpenseDescription = text
		s.State = StateWaitingExpenseAmount
		e.send(ctx, userID, expenseAmountPromptText(text))

	case StateWaitingExpenseAmount:
		amount, err := domain.ParseAmount(text)
		if err != nil {
			e.send(ctx, userID, errorText(errInvalidAmount))
			return
		}
		e.recordTransaction(ctx, userID, s, domain.TypeExpense, s.ExpenseCategory, s.ExpenseDescription, amount)

	case StateWaitingIncomeDescription:
		if utf8.RuneCountInString(text) < 2 {
			e.send(ctx, userID, errorText(errMissingDescription))
			return
		}
		s.IncomeDescription = text
		s.State = StateWaitingIncomeAmount
		e.send(ctx, userID, incomeAmountPromptText(text))

	case StateWaitingIncomeAmount:
		amount, err := domain.ParseAmount(text)
		if err != nil {
			e.send(ctx, userID, errorText(errInvalidAmount))
			return
		}
		e.recordTransaction(ctx, userID, s, domain.TypeIncome, s.IncomeSource, s.IncomeDescription, amount)

	default:
		// Waiting on a quick reply; free text gets the menu again.
		s.Reset()
		e.sendWelcome(ctx, userID)
	}
}

func (e *Engine) handleIdleText(ctx context.Context, userID string, s *Session, text string) {
	lower := strings.ToLower(text)

	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch {
	case containsAny("hi", "hello", "hey", "start", "menu"):
		e.sendWelcome(ctx, userID)
	case containsAny("expense", "spend", "cost", "buy", "paid"):
		s.State = StateWaitingExpenseCategory
		e.sendReplies(ctx, userID, expenseStartText, ExpenseCategoryReplies())
	case containsAny("income", "earn", "salary", "money", "receive"):
		s.State = StateWaitingIncomeSource
		e.sendReplies(ctx, userID, incomeStartText, IncomeSourceReplies())
	case containsAny("stats", "report", "summary", "total", "view"):
		s.State = StateWaitingStatsPeriod
		e.sendReplies(ctx, userID, statsStartText, StatsPeriodReplies())
	case containsAny("help", "what", "how"):
		e.sendReplies(ctx, userID, helpText, MainMenuReplies())
	default:
		e.sendWelcome(ctx, userID)
	}
}

func (e *Engine) recordTransaction(ctx context.Context, userID string, s *Session, txType domain.TransactionType, categoryOrSource, description string, amount decimal.Decimal) {
	if categoryOrSource == "" {
		categoryOrSource = "Other"
	}
	if description == "" {
		if txType == domain.TypeIncome {
			description = "Income"
		} else {
			description = "Expense"
		}
	}

	tx := domain.Transaction{
		Timestamp:        e.now(),
		Type:             txType,
		CategoryOrSource: categoryOrSource,
		Description:      description,
		Amount:           amount,
		UserID:           userID,
	}

	if err := e.ledger.AppendTransaction(ctx, tx); err != nil {
		// Keep the amount state so the user can simply resend the number.
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to append transaction")
		e.send(ctx, userID, errorText(errStorage))
		return
	}

	e.log.Info().
		Str("user_id", userID).
		Str("type", string(txType)).
		Str("category_or_source", categoryOrSource).
		Str("amount", amount.String()).
		Msg("transaction recorded")

	s.Reset()
	e.sendReplies(ctx, userID, confirmationText(string(txType), amount, description, categoryOrSource), confirmationReplies())
	e.publishRebuild(ctx, userID)
}

func (e *Engine) sendReport(ctx context.Context, userID string, s *Session, period timeutil.Period) {
	records, err := e.ledger.ReadAllTransactions(ctx)
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to read transactions")
		s.Reset()
		e.send(ctx, userID, errorText(errStorage))
		return
	}

	// Reports cover only the requesting user's entries.
	mine := records[:0:0]
	for _, tx := range records {
		if tx.UserID == userID {
			mine = append(mine, tx)
		}
	}

	s.Reset()
	e.send(ctx, userID, report.Generate(mine, period, e.now()))
}

func (e *Engine) publishRebuild(ctx context.Context, userID string) {
	if e.rebuilds == nil {
		return
	}
	job := &jobs.RebuildReportJob{
		UserID: userID,
		Reason: "transaction_logged",
	}
	if err := e.rebuilds.PublishRebuild(ctx, job); err != nil {
		// The formatted view is derived data; the next successful append
		// will queue another rebuild.
		e.log.Warn().Err(err).Str("user_id", userID).Msg("failed to queue report rebuild")
	}
}

func (e *Engine) send(ctx context.Context, userID, text string) {
	if err := e.sender.SendText(ctx, userID, text); err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to send message")
	}
}

func (e *Engine) sendReplies(ctx context.Context, userID, text string, replies []messenger.QuickReply) {
	if err := e.sender.SendQuickReplies(ctx, userID, text, replies); err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("failed to send quick replies")
	}
}

func (e *Engine) sendWelcome(ctx context.Context, userID string) {
	e.sendReplies(ctx, userID, welcomeText, MainMenuReplies())
}
