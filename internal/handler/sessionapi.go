package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/i18n"
	"github.com/xenking/atlas-parfum/internal/session"
)

type cartItemPayload struct {
	Product  productPayload `json:"product"`
	Quantity int            `json:"quantity"`
}

type sessionPayload struct {
	Language  string            `json:"language"`
	Direction string            `json:"direction"`
	Items     []cartItemPayload `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func toSessionPayload(s *session.Session) sessionPayload {
	items := s.Items()
	payload := sessionPayload{
		Language:  string(s.Language()),
		Direction: string(s.TextDirection()),
		Items:     make([]cartItemPayload, len(items)),
		Total:     s.Total().InexactFloat64(),
		ItemCount: s.ItemCount(),
	}
	for i, it := range items {
		payload.Items[i] = cartItemPayload{
			Product:  toProductPayload(it.Product),
			Quantity: it.Quantity,
		}
	}
	return payload
}

// getSession handles GET /session.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) error {
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}

// setLanguage handles PUT /session/language. Unknown language codes are
// rejected at the API boundary; the session itself also ignores them.
func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	lang, ok := i18n.Parse(body.Language)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown language")
		return
	}

	h.withSession(w, r, func(s *session.Session) error {
		s.SetLanguage(lang)
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}

// addCartItem handles POST /session/cart/items. The product is resolved
// from the catalog so the cart snapshots server-side data, never
// client-supplied prices.
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	ctx := r.Context()
	p, err := h.products.GetByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(ctx).Error("Failed to resolve product", zap.String("id", body.ProductID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.withSession(w, r, func(s *session.Session) error {
		s.AddToCart(*p)
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}

// updateCartItem handles PUT /session/cart/items/{id}. The quantity is
// absolute; zero or negative removes the row.
func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	id := r.PathValue("id")
	h.withSession(w, r, func(s *session.Session) error {
		s.UpdateQuantity(id, body.Quantity)
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}

// removeCartItem handles DELETE /session/cart/items/{id}. Removing an
// absent product still succeeds.
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.withSession(w, r, func(s *session.Session) error {
		s.RemoveFromCart(id)
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}

// clearCart handles DELETE /session/cart.
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) error {
		s.ClearCart()
		writeJSON(w, http.StatusOK, toSessionPayload(s))
		return nil
	})
}
