package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// Service orchestrates signup, login, session checks and logout over the
// credential store, the hasher and the session codec. It holds no request
// state of its own; a session exists only as the client's cookie plus the
// live store record.
type Service struct {
	store  Store
	hasher *Hasher
	codec  *SessionCodec
}

// NewService constructs a Service.
func NewService(store Store, hasher *Hasher, codec *SessionCodec) *Service {
	return &Service{store: store, hasher: hasher, codec: codec}
}

// Signup registers a new account and returns its public profile. Input must
// already be validated and normalized.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Profile, error) {
	// Fast duplicate check so an obviously taken email skips the bcrypt run.
	// The conditional write below is the authoritative guard.
	if _, err := s.store.Get(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", httpx.ErrDuplicate)
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: digest,
		CreatedAt:    time.Now().UTC(),
		LastLogin:    nil,
		IsActive:     true,
	}
	inserted, err := s.store.PutIfAbsent(ctx, in.Email, user)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("%w: email already registered", httpx.ErrDuplicate)
	}
	return &Profile{FullName: user.FullName, Email: user.Email}, nil
}

// Login verifies credentials, records the login time and issues the session
// cookie. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Profile, *http.Cookie, error) {
	user, err := s.store.Get(ctx, in.Email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, nil, httpx.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, httpx.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.store.Put(ctx, user.Email, user); err != nil {
		return nil, nil, err
	}

	cookie := s.codec.Encode(user.Email, user.FullName, in.RememberMe)
	return &Profile{FullName: user.FullName, Email: user.Email}, cookie, nil
}

// CheckLogin re-derives the session's authenticity from a raw cookie value.
// The cookie by itself proves nothing; the account must still exist and be
// active.
func (s *Service) CheckLogin(ctx context.Context, rawCookie string) (*Profile, error) {
	claim, err := s.codec.Decode(rawCookie)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Get(ctx, CanonicalEmail(claim.Email))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown account", httpx.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account deactivated", httpx.ErrUnauthorized)
	}
	return &Profile{FullName: user.FullName, Email: user.Email, LastLogin: user.LastLogin}, nil
}

// ClearCookie returns the cookie that ends the client's session. Logout
// always succeeds; there is no server-side state to tear down.
func (s *Service) ClearCookie() *http.Cookie {
	return s.codec.Clear()
}
