package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAPIURL is the Meta Send API endpoint.
const DefaultAPIURL = "https://graph.facebook.com/v18.0/me/messages"

// sendTimeout bounds every outbound call so a slow Graph API can never hang
// the conversation loop.
const sendTimeout = 10 * time.Second

// Client delivers messages through the Meta Send API.
type Client struct {
	apiURL      string
	accessToken string
	httpClient  *http.Client
	log         zerolog.Logger
}

// NewClient creates a Send API client authenticated with the page access token.
func NewClient(accessToken string, log zerolog.Logger) *Client {
	return &Client{
		apiURL:      DefaultAPIURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: sendTimeout},
		log:         log,
	}
}

// NewClientWithURL creates a client against a custom endpoint. Used in tests.
func NewClientWithURL(apiURL, accessToken string, log zerolog.Logger) *Client {
	c := NewClient(accessToken, log)
	c.apiURL = apiURL
	return c
}

type recipient struct {
	ID string `json:"id"`
}

type outboundMessage struct {
	Text         string       `json:"text"`
	QuickReplies []quickReply `json:"quick_replies,omitempty"`
}

type quickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

type sendRequest struct {
	Recipient    recipient        `json:"recipient"`
	Message      *outboundMessage `json:"message,omitempty"`
	SenderAction string           `json:"sender_action,omitempty"`
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, userID, text string) error {
	return c.send(ctx, sendRequest{
		Recipient: recipient{ID: userID},
		Message:   &outboundMessage{Text: text},
	})
}

// SendQuickReplies delivers a text message with tappable choices.
func (c *Client) SendQuickReplies(ctx context.Context, userID, text string, replies []QuickReply) error {
	msg := &outboundMessage{Text: text}
	for _, r := range replies {
		msg.QuickReplies = append(msg.QuickReplies, quickReply{
			ContentType: "text",
			Title:       r.Title,
			Payload:     r.Payload,
		})
	}
	return c.send(ctx, sendRequest{
		Recipient: recipient{ID: userID},
		Message:   msg,
	})
}

// SendTyping turns the typing indicator on while the bot is working.
func (c *Client) SendTyping(ctx context.Context, userID string) error {
	return c.send(ctx, sendRequest{
		Recipient:    recipient{ID: userID},
		SenderAction: "typing_on",
	})
}

func (c *Client) send(ctx context.Context, payload sendRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	endpoint := c.apiURL + "?" + url.Values{"access_token": {c.accessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send to messenger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("user_id", payload.Recipient.ID).
			Str("response", string(respBody)).
			Msg("Send API rejected message")
		return fmt.Errorf("send to messenger: status %d", resp.StatusCode)
	}

	return nil
}
