package conversation

// Event is a single inbound interaction from a user. Webhook parsing reduces
// every Messenger delivery to one of the concrete event types below.
type Event interface {
	User() string
}

// FreeText is a typed message without a quick-reply payload.
type FreeText struct {
	UserID string
	Text   string
}

func (e FreeText) User() string { return e.UserID }

// Selection is a tapped quick reply or postback button, carrying its payload
// tag.
type Selection struct {
	UserID  string
	Payload string
}

func (e Selection) User() string { return e.UserID }

// Unsupported is an attachment or other message kind the bot cannot process.
type Unsupported struct {
	UserID string
}

func (e Unsupported) User() string { return e.UserID }
