package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// SessionCookieName names the browser cookie carrying the session claim.
const SessionCookieName = "userSession"

// extendedSessionAge applies when the client asked to be remembered.
const extendedSessionAge = 30 * 24 * time.Hour

// SessionClaim is the client-held cookie payload. The value is not signed or
// encrypted, so it is a claim rather than a credential: every request must
// re-verify it against the credential store before trusting it. Anyone able
// to set cookies for the origin can claim any active email.
type SessionClaim struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// SessionCodec encodes and decodes the stateless session cookie.
type SessionCodec struct {
	secure bool
}

// NewSessionCodec constructs a codec. secure controls the cookie's Secure
// attribute and should be on in production.
func NewSessionCodec(secure bool) *SessionCodec {
	return &SessionCodec{secure: secure}
}

// Encode builds the session cookie. The value is URL-escaped JSON; raw JSON
// is not a valid cookie octet sequence. Extended sessions live 30 days,
// otherwise the cookie is session-scoped and dropped when the browser closes.
func (c *SessionCodec) Encode(email, fullName string, extended bool) *http.Cookie {
	payload, _ := json.Marshal(SessionClaim{Email: email, FullName: fullName})
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    url.QueryEscape(string(payload)),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if extended {
		cookie.MaxAge = int(extendedSessionAge.Seconds())
	}
	return cookie
}

// Decode parses a raw cookie value back into a claim. Malformed input yields
// a typed error, never a panic. Unescaped JSON is accepted too, for clients
// that set the cookie by hand.
func (c *SessionCodec) Decode(raw string) (SessionClaim, error) {
	value, err := url.QueryUnescape(raw)
	if err != nil {
		value = raw
	}
	var claim SessionClaim
	if err := json.Unmarshal([]byte(value), &claim); err != nil {
		return SessionClaim{}, fmt.Errorf("%w: %v", httpx.ErrMalformedSession, err)
	}
	if claim.Email == "" {
		return SessionClaim{}, fmt.Errorf("%w: missing email", httpx.ErrMalformedSession)
	}
	return claim, nil
}

// Clear builds the cookie that instructs the client to drop the session.
func (c *SessionCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
