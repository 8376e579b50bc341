package auth

import (
	"errors"
	"fmt"
	"net/http"

	"courseportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service     *Service
	frontendURL string
}

func NewHandler(service *Service, frontendURL string) *Handler {
	return &Handler{service: service, frontendURL: frontendURL}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.GET("/magic-login", h.MagicLogin)
		authGroup.POST("/access-token", h.ExchangeToken)
		authGroup.POST("/resend-magic-link", h.ResendLink)
		authGroup.POST("/admin-login", h.AdminLogin)
		authGroup.POST("/register-admin", h.RegisterAdmin)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.POST("/logout", h.Logout)
	}
	userGroup := protected.Group("/users")
	{
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

// Login requests a magic login link for an email address. The response is
// identical whether or not the address maps to an account.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email address is required")
		return
	}

	if err := h.service.RequestLink(c.Request.Context(), req.Email, req.Name); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email address is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to process login request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login link sent to your email",
		"email":   req.Email,
	})
}

// MagicLogin handles the clicked link: consume the token and redirect to the
// frontend callback carrying the session token.
func (h *Handler) MagicLogin(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing token")
		return
	}

	result, err := h.service.ConsumeLink(c.Request.Context(), token)
	if err != nil {
		h.consumeError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/auth/callback?access_token=%s", h.frontendURL, result.AccessToken))
}

// ExchangeToken is the JSON variant of MagicLogin for frontends that post
// the token instead of following the redirect.
func (h *Handler) ExchangeToken(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Token is required")
		return
	}

	result, err := h.service.ConsumeLink(c.Request.Context(), req.Token)
	if err != nil {
		h.consumeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"access_token": result.AccessToken,
		"user": UserPublic{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
			Role:  string(result.User.Role),
		},
	})
}

func (h *Handler) consumeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "This login link is not valid")
	case errors.Is(err, ErrAlreadyUsed):
		response.Error(c, http.StatusConflict, "LINK_ALREADY_USED", "This login link has already been used")
	case errors.Is(err, ErrExpired):
		response.Error(c, http.StatusGone, "LINK_EXPIRED", "This login link has expired, request a new one")
	case errors.Is(err, ErrAccountDisabled):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "This account is disabled")
	default:
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to complete login")
	}
}

func (h *Handler) ResendLink(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email address is required")
		return
	}

	if err := h.service.ResendLink(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Please wait before requesting another link")
		case errors.Is(err, ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "A valid email address is required")
		default:
			response.Error(c, http.StatusInternalServerError, "RESEND_FAILED", "Failed to resend login link")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Magic link resent",
	})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password required")
		return
	}

	result, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrNotAdmin):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin privileges required")
		case errors.Is(err, ErrAccountDisabled):
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "This account is disabled")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": result.AccessToken,
		"user": UserPublic{
			ID:    result.User.ID,
			Email: result.User.Email,
			Name:  result.User.Name,
			Role:  string(result.User.Role),
		},
	})
}

func (h *Handler) RegisterAdmin(c *gin.Context) {
	var req RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.RegisterAdmin(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadSetupKey):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Invalid setup key")
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register admin")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user": UserPublic{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Logout is stateless: the session token self-expires and the client simply
// discards it.
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
