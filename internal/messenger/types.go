// Package messenger talks to the Meta Messenger Send API and defines the
// webhook payload shapes the platform delivers.
package messenger

// QuickReply is one tappable choice offered under a message: a display title
// plus the opaque payload tag echoed back when the user picks it.
type QuickReply struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// WebhookPayload is the body Meta POSTs to the webhook endpoint.
type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is a single inbound event: a message, a quick-reply tap
// (delivered inside the message), or a postback from a persistent menu.
type MessagingEvent struct {
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Timestamp int64       `json:"timestamp"`
	Message   *Message    `json:"message,omitempty"`
	Postback  *Postback   `json:"postback,omitempty"`
}

// Participant identifies one side of the conversation.
type Participant struct {
	ID string `json:"id"`
}

// Message is an inbound user message. Text may be empty for attachments,
// stickers, and other unsupported content.
type Message struct {
	MID        string              `json:"mid"`
	Text       string              `json:"text"`
	QuickReply *QuickReplyEcho     `json:"quick_reply,omitempty"`
	Attachments []struct {
		Type string `json:"type"`
	} `json:"attachments,omitempty"`
}

// QuickReplyEcho carries the payload of the quick reply the user tapped.
type QuickReplyEcho struct {
	Payload string `json:"payload"`
}

// Postback is sent by persistent menu buttons and the Get Started button.
type Postback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}
