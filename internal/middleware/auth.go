package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextActor     = "actor"
	ContextRequestID = "requestID"

	RoleAdmin = "admin"
)

// AdminAuth protege as rotas administrativas com um JWT HS256.
// Sem ADMIN_PASSWORD_HASH configurado as rotas ficam abertas.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminPasswordHash == "" {
			c.Set(ContextActor, RoleAdmin)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin {
			httperr.Forbidden(c, "forbidden", "Acesso restrito ao administrador.")
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			sub = RoleAdmin
		}
		c.Set(ContextActor, sub)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Autenticação necessária.")
	c.Abort()
}

// Actor devolve quem fez a requisição, para a auditoria.
func Actor(c *gin.Context) string {
	if v, ok := c.Get(ContextActor); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "public"
}
