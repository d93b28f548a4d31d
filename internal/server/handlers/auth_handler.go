package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/server/middleware"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/service/auth"
)

// AuthHandler serves sign-in and token verification.
type AuthHandler struct {
	svc    *auth.Service
	users  mongodb.UserStore
	logger *zap.Logger
}

// NewAuthHandler constructs the auth HTTP adapter.
func NewAuthHandler(svc *auth.Service, users mongodb.UserStore, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, users: users, logger: logger}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
}

// SignIn exchanges credentials for a bearer token. Unknown email and wrong
// password produce the same response.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	token, user, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("sign in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sign in successful",
		"token":   token,
		"user":    userSummary{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

// Verify re-checks a bearer token and returns the account's current data.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		return
	}

	identity, err := h.svc.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	id, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	user, err := h.users.FindUserByID(c.Request.Context(), id)
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("token verification lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, userSummary{ID: user.ID, Email: user.Email, Role: user.Role})
}
