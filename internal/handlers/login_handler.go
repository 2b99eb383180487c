package handlers

import (
	"errors"
	"net/http"

	"swiftpos/internal/auth"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the credentials, opens the session and returns a JWT.
func Login(a *auth.Service, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := a.Login(input.Username, input.Password)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		token, err := auth.GenerateToken(secret, user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":    token,
			"role":     user.Role,
			"username": user.Username,
			"name":     user.Name,
		})
	}
}

// Logout clears the persisted session. The JWT itself simply expires.
func Logout(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.Logout(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// Register creates an account without an existing session. Only mounted when
// the registration feature flag is on.
func Register(a *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input auth.UserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		user, err := a.AddUser(input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User likely already exists"})
			return
		}
		c.JSON(http.StatusCreated, user.Redacted())
	}
}
