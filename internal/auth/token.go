// Package auth issues and verifies the bearer tokens used by the chat
// widget. Tokens are HS256 JWTs carrying the customer's email and a
// seven-day expiry.
package auth

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// ErrNoSecret is returned by Issue when the issuer was built without a
// signing secret. This is a server configuration error.
var ErrNoSecret = errors.New("auth: signing secret not configured")

// Identity is the claim carried by a valid token.
type Identity struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer mints and validates signed bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes an Issuer.
type Option func(*Issuer)

// WithTTL overrides the default seven-day token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer creates an Issuer signing with the given secret.
func NewIssuer(secret []byte, opts ...Option) *Issuer {
	i := &Issuer{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Configured reports whether a signing secret is present.
func (i *Issuer) Configured() bool {
	return len(i.secret) > 0
}

// Issue mints a signed token for the given email, expiring after the
// issuer's TTL.
func (i *Issuer) Issue(email string) (string, error) {
	if !i.Configured() {
		return "", ErrNoSecret
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify parses and validates a token. It returns nil for anything short
// of a valid token — expired, malformed, wrong signature — so callers
// treat "no valid identity" uniformly.
func (i *Issuer) Verify(tokenString string) *Identity {
	if !i.Configured() || tokenString == "" {
		return nil
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(i.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return &Identity{Email: c.Email}
}
