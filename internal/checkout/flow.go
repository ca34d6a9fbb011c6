// Package checkout drives the linear checkout progression over a shop
// session: cart -> info -> payment -> confirmed. The flow is client-state
// only; no order is persisted and the single payment method is cash on
// delivery.
package checkout

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/xenking/atlas-parfum/internal/session"
)

// Step is a checkout state.
type Step string

const (
	StepCart      Step = "cart"
	StepInfo      Step = "info"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

// ErrEmptyCart guards the cart -> info transition.
var ErrEmptyCart = fmt.Errorf("cart is empty")

// MissingFieldError reports a required customer info field that was empty
// after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidTransitionError reports an action attempted from the wrong step.
// The flow state is unchanged when it is returned.
type InvalidTransitionError struct {
	From   Step
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from step %s", e.Action, e.From)
}

// CustomerInfo holds the contact fields collected in the info step. All
// four are required.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Order number shape: prefix plus nine characters from a fixed uppercase
// alphanumeric alphabet. Non-cryptographic and not deduplicated; collision
// odds are accepted for this scope.
const (
	orderNumberPrefix   = "ORD-"
	orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	orderNumberLength   = 9
)

// Flow walks one checkout attempt. It lives for the duration of the
// attempt only and is never persisted across restarts.
type Flow struct {
	sess *session.Session

	step        Step
	info        CustomerInfo
	orderNumber string
}

// NewFlow starts a checkout flow at the cart step.
func NewFlow(sess *session.Session) *Flow {
	return &Flow{sess: sess, step: StepCart}
}

// Step returns the current step.
func (f *Flow) Step() Step {
	return f.step
}

// Session returns the session the flow was started against.
func (f *Flow) Session() *session.Session {
	return f.sess
}

// Info returns the customer info entered so far. Populated fields survive
// back navigation until Reset.
func (f *Flow) Info() CustomerInfo {
	return f.info
}

// OrderNumber returns the generated order identifier, empty until the flow
// is confirmed.
func (f *Flow) OrderNumber() string {
	return f.orderNumber
}

// Begin moves cart -> info. An empty cart cannot proceed.
func (f *Flow) Begin() error {
	if f.step != StepCart {
		return &InvalidTransitionError{From: f.step, Action: "begin checkout"}
	}
	if len(f.sess.Items()) == 0 {
		return ErrEmptyCart
	}
	f.step = StepInfo
	return nil
}

// SubmitInfo validates the contact fields and moves info -> payment. On
// validation failure the step does not advance and previously stored info
// is untouched.
func (f *Flow) SubmitInfo(info CustomerInfo) error {
	if f.step != StepInfo {
		return &InvalidTransitionError{From: f.step, Action: "submit info"}
	}

	info.FullName = strings.TrimSpace(info.FullName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Address = strings.TrimSpace(info.Address)

	switch {
	case info.FullName == "":
		return &MissingFieldError{Field: "fullName"}
	case info.Email == "":
		return &MissingFieldError{Field: "email"}
	case info.Phone == "":
		return &MissingFieldError{Field: "phone"}
	case info.Address == "":
		return &MissingFieldError{Field: "address"}
	}

	f.info = info
	f.step = StepPayment
	return nil
}

// Back steps payment -> info or info -> cart. Entered customer info is
// kept so revisiting the info step never loses fields.
func (f *Flow) Back() error {
	switch f.step {
	case StepPayment:
		f.step = StepInfo
	case StepInfo:
		f.step = StepCart
	default:
		return &InvalidTransitionError{From: f.step, Action: "go back"}
	}
	return nil
}

// PlaceOrder confirms the order: payment -> confirmed. It generates the
// order number and clears the cart as a side effect.
func (f *Flow) PlaceOrder() (string, error) {
	if f.step != StepPayment {
		return "", &InvalidTransitionError{From: f.step, Action: "place order"}
	}

	f.orderNumber = newOrderNumber()
	f.step = StepConfirmed
	f.sess.ClearCart()
	return f.orderNumber, nil
}

// Reset abandons the attempt and returns to the cart step, clearing any
// entered info and order number. Navigating away from a confirmed order
// lands here.
func (f *Flow) Reset() {
	f.step = StepCart
	f.info = CustomerInfo{}
	f.orderNumber = ""
}

func newOrderNumber() string {
	var b strings.Builder
	b.Grow(len(orderNumberPrefix) + orderNumberLength)
	b.WriteString(orderNumberPrefix)
	for range orderNumberLength {
		b.WriteByte(orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))])
	}
	return b.String()
}
