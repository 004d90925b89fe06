package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/schoolboard/backend/internal/middleware"
	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method Register performs user credentials validation and account creation.
	//
	// Fails with models.ErrValidation on blank fields and models.ErrDuplicateUsername
	// when the username is taken.
	Register(ctx context.Context, username, password string) error
	// Method Login authenticates a user and establishes a session, returning the
	// user together with the opaque session token.
	//
	// Unknown usernames and wrong passwords both fail with models.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	// Method Logout invalidates the session behind the token; idempotent.
	Logout(ctx context.Context, token string) error
	// Method CurrentIdentity resolves a session token to the caller's identity,
	// or (nil, nil) when unauthenticated.
	CurrentIdentity(ctx context.Context, token string) (*models.Identity, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
	sessionTTL  time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, sessionTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

// Register handles POST /api/register
// @Summary Register a new user
// @Description Register a new user with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 200 {object} map[string]any "Registration successful"
// @Failure 400 {object} map[string]any "Invalid request body or username taken"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.Register(r.Context(), req.Username, req.Password); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "registration successful, please log in"})
}

// Login handles POST /api/login
// @Summary Login user
// @Description Authenticate with username and password. Sets the session token as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} map[string]any "Login successful"
// @Failure 401 {object} map[string]any "Invalid credentials"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token, int(h.sessionTTL.Seconds()))

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}

// Logout handles POST /api/logout
// @Summary Logout user
// @Description Invalidate the current session and clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any "Logout successful"
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.respondDomainError(w, err)
			return
		}
	}

	// Expire the cookie regardless of whether a session existed
	h.setSessionCookie(w, "", -1)

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Me handles GET /api/me
// @Summary Get current user
// @Description Return the identity resolved from the session cookie, or null for anonymous callers
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any "Current user or null"
// @Router /api/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.respondJSON(w, http.StatusOK, map[string]any{"ok": false, "user": nil})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "user": identity})
}

// setSessionCookie sets or clears the HTTP-only session cookie
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
