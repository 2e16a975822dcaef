package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keanlouis30/MessengerWalletSystem/internal/conversation"
	"github.com/keanlouis30/MessengerWalletSystem/internal/domain"
	"github.com/keanlouis30/MessengerWalletSystem/internal/messenger"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingSender) SendText(ctx context.Context, userID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) SendQuickReplies(ctx context.Context, userID, text string, replies []messenger.QuickReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingSender) SendTyping(ctx context.Context, userID string) error { return nil }

type noopLedger struct{}

func (noopLedger) AppendTransaction(ctx context.Context, tx domain.Transaction) error { return nil }
func (noopLedger) ReadAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return nil, nil
}

func newWebhookHandler(sender *recordingSender) *WebhookHandler {
	engine := conversation.NewEngine(sender, noopLedger{}, nil, zerolog.Nop())
	return NewWebhookHandler(engine, "secret-token", zerolog.Nop())
}

func TestWebhookVerify(t *testing.T) {
	h := newWebhookHandler(&recordingSender{})

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "12345" {
		t.Errorf("body = %q, want challenge echoed", rec.Body.String())
	}
}

func TestWebhookVerify_WrongToken(t *testing.T) {
	h := newWebhookHandler(&recordingSender{})

	req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 403 {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "12345") {
		t.Error("challenge must not be echoed on failed verification")
	}
}

func TestWebhookReceive_TextMessage(t *testing.T) {
	sender := &recordingSender{}
	h := newWebhookHandler(sender)

	body := `{
		"object": "page",
		"entry": [{
			"id": "page-1",
			"messaging": [{
				"sender": {"id": "user-1"},
				"message": {"mid": "m1", "text": "hello"}
			}]
		}]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Welcome to Messenger Wallet Bot") {
		t.Errorf("sent = %v, want welcome message", sender.texts)
	}
}

func TestWebhookReceive_QuickReplyBeatsText(t *testing.T) {
	sender := &recordingSender{}
	h := newWebhookHandler(sender)

	body := `{
		"object": "page",
		"entry": [{
			"messaging": [{
				"sender": {"id": "user-1"},
				"message": {
					"mid": "m1",
					"text": "💸 Log Expense",
					"quick_reply": {"payload": "LOG_EXPENSE"}
				}
			}]
		}]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "log your expense") {
		t.Errorf("sent = %v, want expense prompt", sender.texts)
	}
}

func TestWebhookReceive_Postback(t *testing.T) {
	sender := &recordingSender{}
	h := newWebhookHandler(sender)

	body := `{
		"object": "page",
		"entry": [{
			"messaging": [{
				"sender": {"id": "user-1"},
				"postback": {"title": "Get Started", "payload": "GET_STARTED"}
			}]
		}]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "Welcome") {
		t.Errorf("sent = %v, want welcome", sender.texts)
	}
}

func TestWebhookReceive_InvalidBody(t *testing.T) {
	h := newWebhookHandler(&recordingSender{})

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 400 {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWebhookReceive_NonPageObjectIgnored(t *testing.T) {
	sender := &recordingSender{}
	h := newWebhookHandler(sender)

	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(`{"object": "instagram", "entry": []}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(sender.texts) != 0 {
		t.Errorf("no messages expected, got %v", sender.texts)
	}
}

func TestWebhookReceive_AttachmentOnly(t *testing.T) {
	sender := &recordingSender{}
	h := newWebhookHandler(sender)

	body := `{
		"object": "page",
		"entry": [{
			"messaging": [{
				"sender": {"id": "user-1"},
				"message": {"mid": "m1", "attachments": [{"type": "image"}]}
			}]
		}]
	}`
	req := httptest.NewRequest("POST", "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sender.texts) != 1 || !strings.Contains(sender.texts[0], "only process text") {
		t.Errorf("sent = %v, want unsupported message reply", sender.texts)
	}
}
