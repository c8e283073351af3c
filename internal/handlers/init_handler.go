package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
)

type InitHandler struct {
	seeder *seed.Seeder
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewInitHandler(seeder *seed.Seeder, dispatcher *audit.Dispatcher, log *zap.Logger) *InitHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InitHandler{seeder: seeder, audit: dispatcher, log: log}
}

type SeedRequest struct {
	Secret string `json:"secret"`
}

func (h *InitHandler) Status(c *gin.Context) {
	st, err := h.seeder.Status(c.Request.Context())
	if err != nil {
		h.log.Error("init status failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := "Base de dados não inicializada. Use POST /api/init/seed."
	if st.Initialized {
		msg = "Base de dados já inicializada."
	}

	httpresp.OK(c, gin.H{
		"initialized": st.Initialized,
		"counts":      st.Counts,
		"message":     msg,
	})
}

func (h *InitHandler) Seed(c *gin.Context) {
	var req SeedRequest
	// corpo vazio cai na checagem do secret
	_ = c.ShouldBindJSON(&req)

	counts, err := h.seeder.Run(c.Request.Context(), req.Secret)
	switch {
	case errors.Is(err, seed.ErrSecretNotConfigured):
		httperr.Internal(c, "init_secret_not_configured", "INIT_SECRET não configurado.")
		return
	case errors.Is(err, seed.ErrInvalidSecret):
		httperr.Forbidden(c, "invalid_secret", "Não autorizado.")
		return
	case errors.Is(err, seed.ErrAlreadyInitialized):
		httperr.Forbidden(c, "already_initialized", "A base de dados já foi inicializada.")
		return
	case err != nil:
		h.log.Error("seed failed", zap.Error(err))
		httperr.Internal(c, "seed_failed", "Erro ao inicializar a base de dados.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    "init",
		Action:   "database_seeded",
		Entity:   "system",
		Metadata: counts,
	})

	httpresp.Created(c, gin.H{
		"message": "Base de dados inicializada.",
		"summary": counts,
	})
}
