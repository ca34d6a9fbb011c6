package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/checkout"
	"github.com/xenking/atlas-parfum/internal/session"
)

type checkoutPayload struct {
	Step        string                `json:"step"`
	Info        checkout.CustomerInfo `json:"info"`
	OrderNumber string                `json:"orderNumber,omitempty"`
}

func toCheckoutPayload(f *checkout.Flow) checkoutPayload {
	return checkoutPayload{
		Step:        string(f.Step()),
		Info:        f.Info(),
		OrderNumber: f.OrderNumber(),
	}
}

// writeFlowError maps checkout domain errors onto the HTTP surface:
// missing fields are the caller's fault, transitions from the wrong step
// are conflicts with current state.
func writeFlowError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		missing *checkout.MissingFieldError
		invalid *checkout.InvalidTransitionError
	)
	switch {
	case errors.As(err, &missing):
		writeError(w, http.StatusBadRequest, missing.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusConflict, "cart is empty")
	case errors.As(err, &invalid):
		writeError(w, http.StatusConflict, invalid.Error())
	default:
		zctx.From(r.Context()).Error("Checkout failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// getCheckout handles GET /session/checkout.
func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}

// beginCheckout handles POST /session/checkout/begin.
func (h *Handler) beginCheckout(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		if err := f.Begin(); err != nil {
			writeFlowError(w, r, err)
			return nil
		}
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}

// submitCheckoutInfo handles POST /session/checkout/info.
func (h *Handler) submitCheckoutInfo(w http.ResponseWriter, r *http.Request) {
	var info checkout.CustomerInfo
	if !decodeBody(w, r, &info) {
		return
	}

	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		if err := f.SubmitInfo(info); err != nil {
			writeFlowError(w, r, err)
			return nil
		}
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}

// checkoutBack handles POST /session/checkout/back.
func (h *Handler) checkoutBack(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		if err := f.Back(); err != nil {
			writeFlowError(w, r, err)
			return nil
		}
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}

// placeOrder handles POST /session/checkout/order. Confirming clears the
// session cart.
func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		if _, err := f.PlaceOrder(); err != nil {
			writeFlowError(w, r, err)
			return nil
		}
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}

// resetCheckout handles POST /session/checkout/reset.
func (h *Handler) resetCheckout(w http.ResponseWriter, r *http.Request) {
	h.withFlow(w, r, func(_ *session.Session, f *checkout.Flow) error {
		f.Reset()
		writeJSON(w, http.StatusOK, toCheckoutPayload(f))
		return nil
	})
}
