package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// Resources é o que os handlers de cadastro compartilham.
type Resources struct {
	DB    *gorm.DB
	Cache usecase.SlotCache
	Audit *audit.Dispatcher
	Log   *zap.Logger
}

func (r Resources) withDefaults() Resources {
	if r.Cache == nil {
		r.Cache = usecase.NopSlotCache{}
	}
	if r.Log == nil {
		r.Log = zap.NewNop()
	}
	return r
}

// changed registra a alteração na auditoria e, se ela mexe na agenda,
// descarta os slots em cache.
func (r Resources) changed(
	c *gin.Context,
	action string,
	entity string,
	entityID *uint,
	meta any,
	affectsSlots bool,
) {
	if affectsSlots {
		if err := r.Cache.Invalidate(c.Request.Context()); err != nil {
			r.Log.Warn("slot cache invalidation failed", zap.Error(err))
		}
	}

	r.Audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	})
}

// dbError responde 404 para registro ausente e 500 para o resto.
func (r Resources) dbError(c *gin.Context, err error, notFoundCode, notFoundMsg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, notFoundCode, notFoundMsg)
		return
	}
	r.Log.Error("database error", zap.String("path", c.FullPath()), zap.Error(err))
	httperr.Internal(c, "internal_error", "Erro interno.")
}
