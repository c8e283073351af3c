package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger persiste eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	actor := ev.Actor
	if actor == "" {
		actor = "system"
	}

	row := models.AuditLog{
		Actor:    actor,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

var _ Sink = (*Logger)(nil)
