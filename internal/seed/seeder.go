// Package seed popula um banco vazio com dados de demonstração.
package seed

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrSecretNotConfigured = errors.New("init secret not configured")
	ErrInvalidSecret       = errors.New("invalid init secret")
	ErrAlreadyInitialized  = errors.New("database already initialized")
)

// chave do pg_advisory_xact_lock que serializa seeds concorrentes
const seedLockKey = 727100

type Counts struct {
	Barbers        int64 `json:"barbers"`
	Services       int64 `json:"services"`
	WorkingHours   int64 `json:"working_hours"`
	Settings       int64 `json:"settings"`
	NonWorkingDays int64 `json:"non_working_days"`
	Appointments   int64 `json:"appointments"`
}

// Initialized segue a regra do cadastro: qualquer barbeiro, serviço ou
// configuração existente conta como base inicializada.
func (c Counts) Initialized() bool {
	return c.Barbers > 0 || c.Services > 0 || c.Settings > 0
}

type Status struct {
	Initialized bool   `json:"initialized"`
	Counts      Counts `json:"counts"`
}

type Seeder struct {
	db     *gorm.DB
	secret string
	log    *zap.Logger
	now    func() time.Time
}

func NewSeeder(db *gorm.DB, secret string, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{db: db, secret: secret, log: log, now: time.Now}
}

func count(db *gorm.DB, model any, dst *int64) error {
	return db.Model(model).Count(dst).Error
}

func (s *Seeder) counts(db *gorm.DB) (Counts, error) {
	var c Counts
	steps := []struct {
		model any
		dst   *int64
	}{
		{&models.Barber{}, &c.Barbers},
		{&models.Service{}, &c.Services},
		{&models.WorkingHours{}, &c.WorkingHours},
		{&models.Setting{}, &c.Settings},
		{&models.NonWorkingDay{}, &c.NonWorkingDays},
		{&models.Appointment{}, &c.Appointments},
	}
	for _, st := range steps {
		if err := count(db, st.model, st.dst); err != nil {
			return Counts{}, fmt.Errorf("count: %w", err)
		}
	}
	return c, nil
}

// Status é recalculado a cada chamada a partir das contagens.
func (s *Seeder) Status(ctx context.Context) (Status, error) {
	c, err := s.counts(s.db.WithContext(ctx))
	if err != nil {
		return Status{}, err
	}
	return Status{Initialized: c.Initialized(), Counts: c}, nil
}

// CheckSecret compara em tempo constante.
func (s *Seeder) CheckSecret(given string) error {
	if s.secret == "" {
		return ErrSecretNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(given), []byte(s.secret)) != 1 {
		return ErrInvalidSecret
	}
	return nil
}

// Run grava a carga de demonstração numa única transação. Dois seeds
// simultâneos são serializados pelo advisory lock; o segundo encontra a
// base populada e falha com ErrAlreadyInitialized.
func (s *Seeder) Run(ctx context.Context, secret string) (Counts, error) {
	if err := s.CheckSecret(secret); err != nil {
		return Counts{}, err
	}

	data := NewDataset(s.now().Year())

	var result Counts
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", seedLockKey).Error; err != nil {
			return fmt.Errorf("seed lock: %w", err)
		}

		before, err := s.counts(tx)
		if err != nil {
			return err
		}
		if before.Initialized() {
			return ErrAlreadyInitialized
		}

		if err := tx.Create(&data.Barbers).Error; err != nil {
			return fmt.Errorf("seed barbers: %w", err)
		}
		if err := tx.Create(&data.Services).Error; err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		if err := tx.Create(&data.Settings).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
		if err := tx.Create(&data.NonWorkingDays).Error; err != nil {
			return fmt.Errorf("seed non working days: %w", err)
		}

		result, err = s.counts(tx)
		return err
	})
	if err != nil {
		return Counts{}, err
	}

	s.log.Info("database seeded",
		zap.Int64("barbers", result.Barbers),
		zap.Int64("services", result.Services),
		zap.Int64("working_hours", result.WorkingHours),
		zap.Int64("non_working_days", result.NonWorkingDays),
	)
	return result, nil
}
