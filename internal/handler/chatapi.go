package handler

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/chat"
)

const maxMessageLength = 4000

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// sendChat handles POST /chat, the customer-facing assistant endpoint.
// Upstream failures surface as a generic 502; the detail goes to the log.
func (h *Handler) sendChat(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ChatRequireAuth && !h.requireIdentity(w, r) {
		return
	}

	message, ok := h.chatMessage(w, r)
	if !ok {
		return
	}

	reply, err := h.chat.Send(r.Context(), message)
	if err != nil {
		h.logChatFailure(r, err)
		if errors.Is(err, chat.ErrNotConfigured) {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeError(w, http.StatusBadGateway, "assistant is unavailable, please try again")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

type generateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Prompt   string `json:"prompt"`
}

type generateResponse struct {
	Token  string `json:"token"`
	Result string `json:"result"`
}

// generate handles POST /generate: authenticate with credentials, mint a
// token and run one generation in a single round trip. Unlike /chat it
// propagates the upstream status code.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	if !h.checkCredentials(email, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Issue(email)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result, err := h.chat.Send(r.Context(), prompt)
	if err != nil {
		h.logChatFailure(r, err)
		var upstream *chat.UpstreamError
		switch {
		case errors.Is(err, chat.ErrNotConfigured):
			writeError(w, http.StatusInternalServerError, "internal error")
		case errors.As(err, &upstream):
			// A 2xx with an unusable body is still an upstream failure;
			// only genuine error statuses pass through.
			status := upstream.StatusCode
			if status < http.StatusBadRequest {
				status = http.StatusBadGateway
			}
			writeError(w, status, "upstream request failed")
		default:
			writeError(w, http.StatusBadGateway, "upstream request failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Token: token, Result: result})
}

func (h *Handler) chatMessage(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return "", false
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return "", false
	}
	if len(message) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message is too long")
		return "", false
	}
	return message, true
}

func (h *Handler) logChatFailure(r *http.Request, err error) {
	lg := zctx.From(r.Context())
	var upstream *chat.UpstreamError
	if errors.As(err, &upstream) {
		lg.Error("Upstream chat request failed",
			zap.Int("status", upstream.StatusCode),
			zap.String("detail", upstream.Detail),
		)
		return
	}
	lg.Error("Chat request failed", zap.Error(err))
}
