package httpapi

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/cory-johannsen/swn-chargen/internal/config"
	"github.com/cory-johannsen/swn-chargen/internal/game/session"
)

// SessionCookies issues and verifies the signed cookie that carries a
// client's session key. The cookie value is "<key>.<mac>", where mac is a
// keyed BLAKE2b-256 over the key.
type SessionCookies struct {
	name   string
	secret []byte
	maxAge time.Duration
	secure bool
}

// NewSessionCookies builds a SessionCookies from cfg. Secrets longer than a
// BLAKE2b key are hashed down to one.
//
// Precondition: cfg.SecretKey must be non-empty.
func NewSessionCookies(cfg config.SessionConfig) (*SessionCookies, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	secret := []byte(cfg.SecretKey)
	if len(secret) > blake2b.Size {
		sum := blake2b.Sum512(secret)
		secret = sum[:]
	}
	return &SessionCookies{
		name:   cfg.CookieName,
		secret: secret,
		maxAge: cfg.MaxAge,
		secure: cfg.Secure,
	}, nil
}

func (s *SessionCookies) sign(key string) string {
	mac, err := blake2b.New256(s.secret)
	if err != nil {
		// The constructor bounds the key length, so this cannot fail.
		panic(err)
	}
	mac.Write([]byte(key))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Encode returns the signed cookie value for key.
func (s *SessionCookies) Encode(key string) string {
	return key + "." + s.sign(key)
}

// Decode verifies value and returns the session key it carries.
func (s *SessionCookies) Decode(value string) (string, bool) {
	key, sig, ok := strings.Cut(value, ".")
	if !ok || key == "" {
		return "", false
	}
	if subtle.ConstantTimeCompare([]byte(sig), []byte(s.sign(key))) != 1 {
		return "", false
	}
	return key, true
}

// Key returns the caller's session key. A request without a valid cookie gets
// a fresh key, and the cookie is set on w.
//
// Postcondition: the returned key is non-empty.
func (s *SessionCookies) Key(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.name); err == nil {
		if key, ok := s.Decode(c.Value); ok {
			return key
		}
	}
	key := session.NewKey()
	cookie := &http.Cookie{
		Name:     s.name,
		Value:    s.Encode(key),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.maxAge > 0 {
		cookie.MaxAge = int(s.maxAge / time.Second)
	}
	http.SetCookie(w, cookie)
	return key
}
