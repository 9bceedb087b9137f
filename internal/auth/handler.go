package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *Validator
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: NewValidator()}
}

// MountRoutes registers auth routes on the provided router. The rate limits
// sit ahead of the handlers so a throttled request does no validation, store
// or hashing work.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(gr chi.Router) {
		gr.Use(SignupLimiter())
		gr.Post("/signup", h.handleSignup)
	})
	r.Group(func(gr chi.Router) {
		gr.Use(LoginLimiter())
		gr.Post("/signin", h.handleSignin)
	})
	r.Get("/check-login", h.handleCheckLogin)
	r.Post("/signout", h.handleSignout)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in SignupInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	in, err := h.validator.ValidateSignup(in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	profile, err := h.service.Signup(r.Context(), in)
	if err != nil {
		h.respondError(w, r, "signup", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, profile)
}

func (h *Handler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}
	in, err := h.validator.ValidateLogin(in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	profile, cookie, err := h.service.Login(r.Context(), in)
	if err != nil {
		h.respondError(w, r, "login", err)
		return
	}
	http.SetCookie(w, cookie)
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) handleCheckLogin(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	profile, err := h.service.CheckLogin(r.Context(), cookie.Value)
	if err != nil {
		// A cookie naming a missing or deactivated account is dead weight;
		// tell the client to drop it.
		if errors.Is(err, httpx.ErrUnauthorized) {
			http.SetCookie(w, h.service.ClearCookie())
		}
		h.respondError(w, r, "check login", err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) handleSignout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.service.ClearCookie())
	httpx.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// respondError logs unexpected failures with full detail and hands the error
// to the shared mapper, which keeps internals out of the response body.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if !clientFault(err) {
		h.logger.Error(op+" failed", slog.Any("error", err), slog.String("path", r.URL.Path))
	}
	httpx.RespondError(w, err)
}

func clientFault(err error) bool {
	return errors.Is(err, httpx.ErrValidation) ||
		errors.Is(err, httpx.ErrDuplicate) ||
		errors.Is(err, httpx.ErrInvalidCredentials) ||
		errors.Is(err, httpx.ErrMalformedSession) ||
		errors.Is(err, httpx.ErrUnauthorized)
}
