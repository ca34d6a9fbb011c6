// Package handler exposes the storefront HTTP surface: catalog reads, the
// per-session cart and checkout API, token issuance, and the chat gateway.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/auth"
	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/checkout"
	"github.com/xenking/atlas-parfum/internal/session"
)

// sessionHeader carries the opaque session identifier. The server mints
// one on first contact and echoes it on every response.
const sessionHeader = "X-Session-ID"

// ChatService is the upstream text-completion dependency.
type ChatService interface {
	Configured() bool
	Send(ctx context.Context, message string) (string, error)
}

// Config holds non-dependency handler configuration.
type Config struct {
	// AuthEmail/AuthPassword enable the credentialed variant of
	// POST /auth/token and gate POST /generate. With an empty AuthPassword
	// any non-empty email gets a guest token.
	AuthEmail    string
	AuthPassword string

	// ChatRequireAuth makes POST /chat demand a valid bearer token.
	ChatRequireAuth bool
}

// Handler implements the HTTP surface, delegating to the catalog
// repository, session manager, token issuer and chat gateway.
type Handler struct {
	cfg      Config
	products catalog.Repository
	sessions *session.Manager
	issuer   *auth.Issuer
	chat     ChatService

	// flows maps session ID to its in-progress checkout attempt. Flow
	// state is deliberately not persisted across restarts.
	mu    sync.Mutex
	flows map[string]*flowEntry
}

type flowEntry struct {
	flow     *checkout.Flow
	lastSeen time.Time
}

// New constructs a Handler with the required dependencies.
func New(
	cfg Config,
	products catalog.Repository,
	sessions *session.Manager,
	issuer *auth.Issuer,
	chat ChatService,
) *Handler {
	return &Handler{
		cfg:      cfg,
		products: products,
		sessions: sessions,
		issuer:   issuer,
		chat:     chat,
		flows:    make(map[string]*flowEntry),
	}
}

// Register wires all routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/token", h.issueToken)
	mux.HandleFunc("POST /chat", h.sendChat)
	mux.HandleFunc("POST /generate", h.generate)

	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("GET /products/{id}", h.getProduct)

	mux.HandleFunc("GET /translations", h.listTranslations)

	mux.HandleFunc("GET /session", h.getSession)
	mux.HandleFunc("PUT /session/language", h.setLanguage)
	mux.HandleFunc("POST /session/cart/items", h.addCartItem)
	mux.HandleFunc("PUT /session/cart/items/{id}", h.updateCartItem)
	mux.HandleFunc("DELETE /session/cart/items/{id}", h.removeCartItem)
	mux.HandleFunc("DELETE /session/cart", h.clearCart)

	mux.HandleFunc("GET /session/checkout", h.getCheckout)
	mux.HandleFunc("POST /session/checkout/begin", h.beginCheckout)
	mux.HandleFunc("POST /session/checkout/info", h.submitCheckoutInfo)
	mux.HandleFunc("POST /session/checkout/back", h.checkoutBack)
	mux.HandleFunc("POST /session/checkout/order", h.placeOrder)
	mux.HandleFunc("POST /session/checkout/reset", h.resetCheckout)
}

// sessionID resolves the caller's session and echoes it on the response.
// IDs are server-minted uuids; anything that does not parse as one is
// replaced with a fresh ID, so a crafted header can never name a path
// outside the session root.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(sessionHeader))
	if _, err := uuid.Parse(id); err != nil {
		id = h.sessions.NewID()
	}
	w.Header().Set(sessionHeader, id)
	return id
}

// withSession runs fn against the caller's session state.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session) error) {
	id := h.sessionID(w, r)
	if err := h.sessions.Update(id, fn); err != nil {
		zctx.From(r.Context()).Error("Session access failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// withFlow runs fn against the caller's session and its checkout flow,
// creating the flow on first use. A flow bound to an evicted session
// instance is stale and gets recreated against the fresh one.
func (h *Handler) withFlow(w http.ResponseWriter, r *http.Request, fn func(*session.Session, *checkout.Flow) error) {
	id := h.sessionID(w, r)
	err := h.sessions.Update(id, func(s *session.Session) error {
		h.mu.Lock()
		e, ok := h.flows[id]
		if !ok || e.flow.Session() != s {
			e = &flowEntry{flow: checkout.NewFlow(s)}
			h.flows[id] = e
		}
		e.lastSeen = time.Now()
		f := e.flow
		h.mu.Unlock()
		return fn(s, f)
	})
	if err != nil {
		zctx.From(r.Context()).Error("Session access failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// StartCleanup evicts checkout flows idle for longer than ttl. The
// goroutine stops when ctx is cancelled.
func (h *Handler) StartCleanup(ctx context.Context, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				h.evictIdleFlows(now, ttl)
			}
		}
	}()
}

func (h *Handler) evictIdleFlows(now time.Time, ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, e := range h.flows {
		if now.Sub(e.lastSeen) >= ttl {
			delete(h.flows, id)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer X" header,
// or returns "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// --- JSON helpers ---

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
