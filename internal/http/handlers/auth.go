package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/config"
	"github.com/turkhealth/clinichub/internal/domain/user"
	"github.com/turkhealth/clinichub/internal/http/middlewares"
	"github.com/turkhealth/clinichub/internal/repo/postgres"
	"github.com/turkhealth/clinichub/internal/security"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
}

type TokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
	log   *slog.Logger
}

func NewAuthHandler(users UserStore, jwt TokenIssuer, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwt,
		log:   log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  user.PublicView `json:"user"`
}

// Login exchanges email+password for a bearer token. Unknown email, inactive
// account and wrong password all answer with the same 401 so the endpoint
// cannot be used to probe which emails exist.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		RespondBadRequest(ctx, "Email and password are required")
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			// burn an equivalent bcrypt so this path is not measurably faster
			security.DummyCompare(req.Password)
			RespondUnauthorized(ctx, "Invalid credentials")
			return
		}

		h.log.Error("login lookup failed", "err", err)
		RespondInternal(ctx, "Login failed")
		return
	}

	if !foundUser.Active {
		security.DummyCompare(req.Password)
		RespondUnauthorized(ctx, "Invalid credentials")
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "Invalid credentials")
		return
	}

	token, err := h.jwt.Generate(foundUser.ID, foundUser.Email, foundUser.Role)

	if err != nil {
		h.log.Error("token generation failed", "err", err)
		RespondInternal(ctx, "Login failed")
		return
	}

	// last-login is informational; a failed write must not fail the login
	if err := h.users.UpdateLastLogin(cctx, foundUser.ID); err != nil {
		h.log.Warn("last-login update failed", "err", err, "user_id", foundUser.ID)
	}

	RespondData(ctx, http.StatusOK, LoginResponse{
		Token: token,
		User:  foundUser.Public(),
	})
}

// Me re-reads the store, so it reflects role/active changes that tokens
// issued earlier do not.
func (h *AuthHandler) Me(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "Authentication required")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		h.log.Error("me lookup failed", "err", err)
		RespondInternal(ctx, "Failed to get user")
		return
	}

	RespondData(ctx, http.StatusOK, u)
}
