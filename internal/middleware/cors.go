package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// CORSMiddleware libera só as origens configuradas. Requisições sem Origin
// (curl, apps nativos, servidor a servidor) passam direto.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	origins := cfg.Origins()
	if !cfg.IsProduction() {
		origins = append(origins, devOrigins...)
	}

	cc := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) > 0 {
		cc.AllowOrigins = origins
	} else {
		cc.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(cc)
}
