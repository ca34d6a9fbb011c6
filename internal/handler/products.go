package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/i18n"
)

// productPayload is the wire shape of a catalog item. Prices are decimal
// internally; the API exposes them as plain numbers.
type productPayload struct {
	ID          string    `json:"id"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
}

func toProductPayload(p catalog.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Category:    string(p.Category),
		Image:       p.Image,
	}
}

func toProductPayloads(ps []catalog.Product) []productPayload {
	out := make([]productPayload, len(ps))
	for i, p := range ps {
		out[i] = toProductPayload(p)
	}
	return out
}

// listProducts handles GET /products with an optional ?category= filter.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products []catalog.Product
		err      error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat := catalog.Category(raw)
		if !cat.Valid() {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		products, err = h.products.ListByCategory(ctx, cat)
	} else {
		products, err = h.products.List(ctx)
	}
	if err != nil {
		zctx.From(ctx).Error("Failed to list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductPayloads(products))
}

// getProduct handles GET /products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	p, err := h.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		zctx.From(ctx).Error("Failed to get product", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProductPayload(*p))
}
