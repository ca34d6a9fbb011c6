package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// issueToken handles POST /auth/token. With no password configured any
// non-empty email receives a guest token; otherwise the configured
// credentials must match.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	email := strings.TrimSpace(body.Email)
	if email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if !h.checkCredentials(email, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Issue(email)
	if err != nil {
		zctx.From(r.Context()).Error("Failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// checkCredentials applies the configured login policy: with no password
// set any caller passes, otherwise email and password must match.
func (h *Handler) checkCredentials(email, password string) bool {
	if h.cfg.AuthPassword == "" {
		return true
	}
	if h.cfg.AuthEmail != "" && !strings.EqualFold(email, h.cfg.AuthEmail) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AuthPassword)) == 1
}

// requireIdentity verifies the bearer token and writes a 401 when it is
// missing or invalid.
func (h *Handler) requireIdentity(w http.ResponseWriter, r *http.Request) bool {
	if h.issuer.Verify(bearerToken(r)) == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	return true
}
