package api

import (
	"net/http"

	"complaint_tracker/internal/identity"
	"complaint_tracker/internal/middleware"
	"complaint_tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRequest carries a new account's required fields.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns the session token and its projection.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RegisterHandler creates an account and logs it in.
func RegisterHandler(mgr *identity.Manager, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		_, sess, err := mgr.Register(req.Username, req.Email, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		token, err := utils.GenerateJWT(*sess, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: token, Username: sess.Username, Role: sess.Role})
	}
}

// LoginHandler authenticates and returns a session token.
func LoginHandler(mgr *identity.Manager, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		sess, err := mgr.Login(req.Username, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		token, err := utils.GenerateJWT(*sess, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, Username: sess.Username, Role: sess.Role})
	}
}

// LogoutHandler clears the active session.
func LogoutHandler(mgr *identity.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := mgr.Logout(); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// SessionHandler returns the current session projection, or a null session
// for anonymous callers.
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.CurrentSession(c)
		if sess == nil {
			c.JSON(http.StatusOK, gin.H{"session": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": gin.H{"username": sess.Username, "role": sess.Role}})
	}
}
