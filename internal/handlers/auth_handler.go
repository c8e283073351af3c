package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	config *config.Config
	now    func() time.Time
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg, now: time.Now}
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "password_required", "Senha é obrigatória.")
		return
	}

	if h.config.AdminPasswordHash == "" {
		httperr.Write(c, http.StatusServiceUnavailable, "auth_not_configured", "Login administrativo não configurado.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Senha inválida.")
		return
	}

	token, expiresAt, err := h.generateToken()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	httpresp.OK(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken() (string, time.Time, error) {
	now := h.now()
	exp := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"sub":  middleware.RoleAdmin,
		"role": middleware.RoleAdmin,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, exp, err
}
