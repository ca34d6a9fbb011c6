// Package session holds the authoritative shop session state: the
// customer's language preference and shopping cart, kept consistent with a
// durable string-keyed store.
//
// Sessions are single-actor: all mutation happens on one logical thread of
// control per session, so the type itself carries no locking. Concurrent
// access across sessions is handled by Manager.
package session

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/i18n"
)

// Store keys, matching the original client-side storage layout.
const (
	cartKey     = "cart"
	languageKey = "language"
)

// CartItem pairs a full product snapshot with a positive quantity. The
// snapshot is deliberate: catalog price changes must not reprice items
// already in the cart.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Session is the in-memory representation of one customer's language and
// cart. Every mutation is written back to the store synchronously; store
// failures are logged and absorbed so the in-memory state keeps working.
type Session struct {
	store Store
	lg    *zap.Logger

	language i18n.Language
	items    []CartItem
}

// New creates a session, restoring language and cart from the store when
// present. Malformed persisted cart data is discarded with a log entry;
// startup never fails on bad state.
func New(store Store, lg *zap.Logger) *Session {
	s := &Session{
		store:    store,
		lg:       lg,
		language: i18n.Default,
	}
	s.load()
	return s
}

func (s *Session) load() {
	if raw, err := s.store.Get(languageKey); err == nil {
		if lang, ok := i18n.Parse(string(raw)); ok {
			s.language = lang
		}
	} else if !IsNotFound(err) {
		s.lg.Warn("Failed to load persisted language", zap.Error(err))
	}

	raw, err := s.store.Get(cartKey)
	if err != nil {
		if !IsNotFound(err) {
			s.lg.Warn("Failed to load persisted cart", zap.Error(err))
		}
		return
	}

	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.lg.Warn("Discarding malformed persisted cart", zap.Error(err))
		return
	}
	// Drop rows that can never be stored states: empty products or
	// non-positive quantities.
	for _, it := range items {
		if it.Product.ID == "" || it.Quantity <= 0 {
			s.lg.Warn("Dropping invalid persisted cart item",
				zap.String("product_id", it.Product.ID),
				zap.Int("quantity", it.Quantity),
			)
			continue
		}
		s.items = append(s.items, it)
	}
}

// Language returns the current language selection.
func (s *Session) Language() i18n.Language {
	return s.language
}

// TextDirection returns the document text direction for the current
// language.
func (s *Session) TextDirection() i18n.Direction {
	return s.language.Dir()
}

// SetLanguage switches the session language. Unknown codes are ignored so
// the persisted value can never be corrupted.
func (s *Session) SetLanguage(lang i18n.Language) {
	if !lang.Valid() || lang == s.language {
		return
	}
	s.language = lang
	s.persistLanguage()
}

// Items returns a copy of the cart contents in insertion order.
func (s *Session) Items() []CartItem {
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// AddToCart adds one unit of the product. An existing row for the same
// product ID is merged by incrementing its quantity; the cart never holds
// two rows for one product.
func (s *Session) AddToCart(p catalog.Product) {
	for i := range s.items {
		if s.items[i].Product.ID == p.ID {
			s.items[i].Quantity++
			s.persistCart()
			return
		}
	}
	s.items = append(s.items, CartItem{Product: p, Quantity: 1})
	s.persistCart()
}

// RemoveFromCart deletes the row with the given product ID. Removing an
// absent product is a no-op.
func (s *Session) RemoveFromCart(productID string) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistCart()
			return
		}
	}
}

// UpdateQuantity sets the row's quantity to the given absolute value.
// Quantities at or below zero remove the row. An unknown product ID is a
// no-op.
func (s *Session) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			s.persistCart()
			return
		}
	}
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.items = nil
	s.persistCart()
}

// Total returns the sum of price times quantity over all cart rows,
// recomputed from current contents.
func (s *Session) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ItemCount returns the total number of units across all cart rows.
func (s *Session) ItemCount() int {
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// persistCart writes the cart back to the store. Failures are logged, not
// returned: a broken store must not break shopping.
func (s *Session) persistCart() {
	items := s.items
	if items == nil {
		items = []CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.lg.Error("Failed to encode cart", zap.Error(err))
		return
	}
	if err := s.store.Set(cartKey, raw); err != nil {
		s.lg.Error("Failed to persist cart", zap.Error(err))
	}
}

func (s *Session) persistLanguage() {
	if err := s.store.Set(languageKey, []byte(s.language)); err != nil {
		s.lg.Error("Failed to persist language", zap.Error(err))
	}
}
