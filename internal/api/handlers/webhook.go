package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/keanlouis30/MessengerWalletSystem/internal/api/middleware"
	"github.com/keanlouis30/MessengerWalletSystem/internal/conversation"
	"github.com/keanlouis30/MessengerWalletSystem/internal/messenger"
)

// WebhookHandler receives Meta webhook traffic: the one-time GET verification
// handshake and POSTed message deliveries.
type WebhookHandler struct {
	engine      *conversation.Engine
	verifyToken string
	log         zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(engine *conversation.Engine, verifyToken string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		engine:      engine,
		verifyToken: verifyToken,
		log:         log,
	}
}

// ServeHTTP dispatches on method: GET is the subscription handshake, POST is
// a delivery.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.verify(w, r)
	case http.MethodPost:
		h.receive(w, r)
	default:
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// verify answers Meta's subscription handshake. The challenge is echoed back
// verbatim only when the mode and token match.
func (h *WebhookHandler) verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		h.log.Info().Msg("Webhook verified")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.log.Warn().Str("mode", mode).Msg("Webhook verification failed")
	middleware.WriteError(w, http.StatusForbidden, "Verification failed")
}

// receive processes a webhook delivery. Meta retries deliveries that do not
// get a 200, so every parseable payload is acknowledged even when individual
// events fail: a retry would replay events that already went through.
func (h *WebhookHandler) receive(w http.ResponseWriter, r *http.Request) {
	var payload messenger.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn().Err(err).Msg("Ignoring unparseable webhook body")
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Object != "page" {
		h.log.Debug().Str("object", payload.Object).Msg("Ignoring non-page webhook object")
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	ctx := r.Context()
	for _, entry := range payload.Entry {
		for _, event := range entry.Messaging {
			h.engine.HandleEvent(ctx, toEvent(event))
		}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// toEvent reduces a raw messaging event to the engine's event model. Echoed
// quick replies carry both text and a payload; the payload wins because it is
// what the user actually tapped.
func toEvent(ev messenger.MessagingEvent) conversation.Event {
	userID := ev.Sender.ID

	if ev.Postback != nil {
		return conversation.Selection{UserID: userID, Payload: ev.Postback.Payload}
	}
	if ev.Message != nil {
		if ev.Message.QuickReply != nil {
			return conversation.Selection{UserID: userID, Payload: ev.Message.QuickReply.Payload}
		}
		if ev.Message.Text != "" {
			return conversation.FreeText{UserID: userID, Text: ev.Message.Text}
		}
	}
	return conversation.Unsupported{UserID: userID}
}
