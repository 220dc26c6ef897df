package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lezzetli/v1/internal/domain/user"
	"github.com/lezzetli/v1/internal/infrastructure/http/middleware"
	"github.com/lezzetli/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// AuthHandlers handles signup, login, logout and password reset.
type AuthHandlers struct {
	accounts inbound.AccountService
	logger   *zap.Logger
}

// NewAuthHandlers creates the auth handler set.
func NewAuthHandlers(accounts inbound.AccountService, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		accounts: accounts,
		logger:   logger.Named("auth-handlers"),
	}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type userResponse struct {
	UID       string `json:"uid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Favorites []int  `json:"favorites"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      userResponse `json:"user"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		Favorites: u.Favorites,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	profile, err := h.accounts.Signup(c.Request.Context(), inbound.SignupCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, toUserResponse(profile), "Account created")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session, profile, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Unix(),
		User:      toUserResponse(profile),
	}, "Signed in")
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.accounts.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "Signed out")
}

// PasswordReset handles POST /api/v1/auth/password-reset
func (h *AuthHandlers) PasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.accounts.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, "If the address exists, a reset link has been sent")
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	profile, err := h.accounts.CurrentUser(c.Request.Context(), middleware.UID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, toUserResponse(profile), "")
}
