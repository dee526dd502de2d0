package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pathlight/internal/middleware"
	"github.com/pathlight/internal/service"
	"github.com/pathlight/pkg/response"
)

// AuthHandler handles authentication API requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Signup handles user registration
// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			response.BadRequest(c, "The user with this email already exists in the system.")
			return
		}
		if errors.Is(err, service.ErrPasswordTooLong) {
			response.BadRequest(c, "Password is too long.")
			return
		}
		internalError(c, err)
		return
	}

	response.Success(c, user)
}

// Login handles the OAuth2 password form login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		// inactive accounts get the same answer as bad credentials
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInactiveAccount) {
			response.BadRequest(c, "Incorrect email or password")
			return
		}
		internalError(c, err)
		return
	}

	response.Success(c, token)
}

// Me returns the authenticated user
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, middleware.GetUser(c))
}

// DeleteMe deletes the authenticated user and all of its data
// DELETE /auth/me
func (h *AuthHandler) DeleteMe(c *gin.Context) {
	user := middleware.GetUser(c)

	if err := h.authService.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		internalError(c, err)
		return
	}

	response.Message(c, "User account and all data deleted")
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.GET("/me", authMiddleware, h.Me)
		auth.DELETE("/me", authMiddleware, h.DeleteMe)
	}
}
