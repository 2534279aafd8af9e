package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dafater-app/dafater/internal/platform/httpx"
	"github.com/dafater-app/dafater/internal/shared"
	"github.com/dafater-app/dafater/internal/users"
)

const (
	devUserID    = "test-user-123"
	devUserEmail = "test@example.com"
)

// UserService is the slice of the users module the handler needs.
type UserService interface {
	Get(ctx context.Context, id string) (*users.User, error)
	Upsert(ctx context.Context, input users.UpsertUserInput) (*users.User, error)
}

// Handler wires the authentication endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	users    UserService
	validate *validator.Validate
	devLogin bool
}

// NewHandler builds a Handler instance. devLogin enables the local
// development login route and must stay off in production.
func NewHandler(logger *slog.Logger, service *Service, userSvc UserService, devLogin bool) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		users:    userSvc,
		validate: validator.New(),
		devLogin: devLogin,
	}
}

// MountRoutes registers authentication routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
	r.Get("/auth/user", h.currentUser)
	r.Get("/logout", h.logout)
	if h.devLogin {
		r.Get("/login", h.devSignIn)
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	userID, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login rejected", slog.String("email", req.Email))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "session unavailable")
		return
	}
	sess.SetUser(userID)

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("load user after login", slog.Any("error", err), slog.String("user_id", userID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// devSignIn upserts a fixed local user and signs the session in as them.
func (h *Handler) devSignIn(w http.ResponseWriter, r *http.Request) {
	email := devUserEmail
	first := "Test"
	last := "User"
	user, err := h.users.Upsert(r.Context(), users.UpsertUserInput{
		ID:        devUserID,
		Email:     &email,
		FirstName: &first,
		LastName:  &last,
	})
	if err != nil {
		h.logger.Error("dev login", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "session unavailable")
		return
	}
	sess.SetUser(user.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	userID := shared.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "not signed in")
		return
	}
	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("load current user", slog.Any("error", err), slog.String("user_id", userID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Destroy()
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
