package conversation

import (
	"fmt"

	"github.com/keanlouis30/MessengerWalletSystem/internal/messenger"
	"github.com/keanlouis30/MessengerWalletSystem/internal/report"
	"github.com/shopspring/decimal"
)

const (
	welcomeText = "👋 Welcome to Messenger Wallet Bot! 💰\n\n" +
		"I'll help you track your income and expenses effortlessly. " +
		"Just chat with me like you would with a friend!\n\n" +
		"What would you like to do?"

	expenseStartText = "💸 Let's log your expense!\n\nFirst, what category does this expense fall under?"
	incomeStartText  = "💰 Great! Let's log your income.\n\nWhat's the source of this income?"
	statsStartText   = "📊 I'll generate your financial report!\n\nWhich time period would you like to see?"

	unsupportedText = "I can only process text messages right now. 😅\n\nPlease send me text or use the quick reply buttons."
)

// Error message kinds passed to errorText.
const (
	errGeneral            = "general"
	errInvalidAmount      = "invalid_amount"
	errMissingDescription = "missing_description"
	errStorage            = "sheets_error"
)

var errorMessages = map[string]string{
	errGeneral: "😅 Oops! Something went wrong. Please try again.\n\n" +
		"If the problem persists, try restarting our conversation.",
	errInvalidAmount: "❌ Please enter a valid amount (numbers only).\n\n" +
		"Example: 150 or 1500.50",
	errMissingDescription: "❌ Please provide a description for this transaction.\n\n" +
		"Example: 'Lunch at restaurant' or 'Freelance payment'",
	errStorage: "📊 Unable to save to your financial log right now. " +
		"Please try again in a moment.\n\nYour data is important to us!",
}

func errorText(kind string) string {
	if msg, ok := errorMessages[kind]; ok {
		return msg
	}
	return errorMessages[errGeneral]
}

// MainMenuReplies are the top-level options shown with the welcome message.
func MainMenuReplies() []messenger.QuickReply {
	return []messenger.QuickReply{
		{Title: "💸 Log Expense", Payload: PayloadLogExpense},
		{Title: "💰 Log Income", Payload: PayloadLogIncome},
		{Title: "📊 View Statistics", Payload: PayloadViewStats},
	}
}

func confirmationReplies() []messenger.QuickReply {
	return []messenger.QuickReply{
		{Title: "💸 Log Another Expense", Payload: PayloadLogExpense},
		{Title: "💰 Log Income", Payload: PayloadLogIncome},
		{Title: "📊 View Statistics", Payload: PayloadViewStats},
	}
}

// ExpenseCategoryReplies lists the category quick replies in menu order.
func ExpenseCategoryReplies() []messenger.QuickReply {
	titles := map[string]string{
		"CATEGORY_FOOD":          "🍔 Food",
		"CATEGORY_TRANSPORT":     "🚗 Transportation",
		"CATEGORY_HOUSING":       "🏠 Housing",
		"CATEGORY_SHOPPING":      "🛒 Shopping",
		"CATEGORY_UTILITIES":     "⚡ Utilities",
		"CATEGORY_ENTERTAINMENT": "🎬 Entertainment",
		"CATEGORY_HEALTHCARE":    "💊 Healthcare",
		"CATEGORY_EDUCATION":     "📚 Education",
		"CATEGORY_OTHER":         "🔧 Other",
	}
	replies := make([]messenger.QuickReply, 0, len(expenseCategories))
	for _, c := range expenseCategories {
		replies = append(replies, messenger.QuickReply{Title: titles[c.Payload], Payload: c.Payload})
	}
	return replies
}

// IncomeSourceReplies lists the income source quick replies in menu order.
func IncomeSourceReplies() []messenger.QuickReply {
	titles := map[string]string{
		"SOURCE_SALARY":     "💼 Salary",
		"SOURCE_FREELANCE":  "💻 Freelance",
		"SOURCE_BUSINESS":   "📈 Business",
		"SOURCE_GIFT":       "🎁 Gift",
		"SOURCE_INVESTMENT": "💰 Investment",
		"SOURCE_REFUND":     "🔄 Refund",
		"SOURCE_OTHER":      "🔧 Other",
	}
	replies := make([]messenger.QuickReply, 0, len(incomeSources))
	for _, s := range incomeSources {
		replies = append(replies, messenger.QuickReply{Title: titles[s.Payload], Payload: s.Payload})
	}
	return replies
}

// StatsPeriodReplies lists the reporting period quick replies.
func StatsPeriodReplies() []messenger.QuickReply {
	return []messenger.QuickReply{
		{Title: "📋 Today", Payload: "PERIOD_TODAY"},
		{Title: "📅 This Week", Payload: "PERIOD_WEEK"},
		{Title: "📆 This Month", Payload: "PERIOD_MONTH"},
	}
}

func categoryConfirmText(category string) string {
	return fmt.Sprintf("✅ Category: %s\n\nNow, please provide a brief description of this expense.\n\nExample: 'Lunch at McDonald's' or 'Gas for car'", category)
}

func sourceConfirmText(source string) string {
	return fmt.Sprintf("✅ Source: %s\n\nPlease provide a description for this income.\n\nExample: 'Monthly salary' or 'Website project payment'", source)
}

func expenseAmountPromptText(description string) string {
	return fmt.Sprintf("✅ Description: %s\n\nFinally, how much did you spend?\n\nJust enter the amount (numbers only):\nExample: 150 or 1500.50", description)
}

func incomeAmountPromptText(description string) string {
	return fmt.Sprintf("✅ Description: %s\n\nHow much did you receive?\n\nJust enter the amount (numbers only):\nExample: 5000 or 15000.75", description)
}

func confirmationText(transactionType string, amount decimal.Decimal, description, category string) string {
	emoji, action := "💸", "logged"
	if transactionType == "income" {
		emoji, action = "💰", "added"
	}

	text := fmt.Sprintf("%s Successfully %s!\n\n", emoji, action)
	text += fmt.Sprintf("Amount: %s\n", report.FormatCurrency(amount))
	if category != "" {
		text += fmt.Sprintf("Category: %s\n", category)
	}
	if description != "" {
		text += fmt.Sprintf("Description: %s\n", description)
	}
	text += "\nWhat would you like to do next?"
	return text
}

const helpText = "🤖 **Messenger Wallet Bot Help**\n\n" +
	"I help you track income and expenses easily!\n\n" +
	"**Main Features:**\n" +
	"💸 Log Expense - Record money you spent\n" +
	"💰 Log Income - Record money you received\n" +
	"📊 View Statistics - See your financial reports\n\n" +
	"**Tips:**\n" +
	"• Use the quick reply buttons for fastest navigation\n" +
	"• Be specific with descriptions (e.g., 'Lunch at Jollibee')\n" +
	"• Enter amounts as numbers only (e.g., 150 or 1500.50)\n\n" +
	"Ready to get started?"
