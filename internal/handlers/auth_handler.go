package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"salespipeline/internal/authz"
	"salespipeline/internal/config"
	"salespipeline/internal/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ops@example.com"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler signs in the operators listed in the configuration.
type AuthHandler struct {
	operators []config.Operator
	secret    []byte
	ttl       time.Duration
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		operators: cfg.Operators,
		secret:    []byte(cfg.JWTSecret),
		ttl:       time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
}

func (h *AuthHandler) find(email string) *config.Operator {
	for i := range h.operators {
		if strings.EqualFold(strings.TrimSpace(h.operators[i].Email), email) {
			return &h.operators[i]
		}
	}
	return nil
}

// @Summary      Sign in
// @Description  Checks operator credentials and returns an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login] bad request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	op := h.find(email)
	if op == nil {
		log.Printf("[auth][login] unknown operator email=%q", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	ph := strings.TrimSpace(op.PasswordHash)
	if ph == "" || bcrypt.CompareHashAndPassword([]byte(ph), []byte(req.Password)) != nil {
		log.Printf("[auth][login] bad password for userID=%d", op.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, exp, err := middleware.IssueToken(h.secret, op.UserID, op.RoleID, h.ttl)
	if err != nil {
		log.Printf("[auth][login] sign token failed for userID=%d: %v", op.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}
	log.Printf("[auth][login] success userID=%d role=%s took=%s",
		op.UserID, authz.Name(op.RoleID), time.Since(start).Truncate(time.Millisecond))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":      op.UserID,
			"email":   op.Email,
			"role_id": op.RoleID,
			"role":    authz.Name(op.RoleID),
		},
		"tokens": gin.H{
			"access_token": token,
			"expires_at":   exp.UTC(),
		},
	})
}
