package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	flashCookie = "billbook_flash"
	flashTTL    = 5 * time.Minute
)

// Flash kinds, used as CSS classes.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
)

var errInvalidFlash = errors.New("invalid flash token")

// Flash is a one-shot message shown on the next page the user sees.
type Flash struct {
	Kind    string
	Message string
}

type flashClaims struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
	jwt.RegisteredClaims
}

// Flasher carries flash messages across a redirect in a signed cookie, so no server-side
// session store is needed.
type Flasher struct {
	secret []byte
	now    func() time.Time
}

func NewFlasher(secret string) *Flasher {
	return &Flasher{secret: []byte(secret), now: time.Now}
}

// Set stores a flash message for the next request.
func (f *Flasher) Set(w http.ResponseWriter, kind, message string) error {
	now := f.now()
	claims := flashClaims{
		Kind:    kind,
		Message: message,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		return fmt.Errorf("failed to sign flash: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Pop returns the pending flash message, if any, and clears it.
// A tampered or expired cookie is discarded and reported as no message.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	claims, err := f.parse(c.Value)
	if err != nil {
		return nil
	}

	return &Flash{Kind: claims.Kind, Message: claims.Message}
}

func (f *Flasher) parse(token string) (*flashClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &flashClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return f.secret, nil
	}, jwt.WithTimeFunc(f.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidFlash, err)
	}

	claims, ok := parsed.Claims.(*flashClaims)
	if !ok || !parsed.Valid {
		return nil, errInvalidFlash
	}

	return claims, nil
}
