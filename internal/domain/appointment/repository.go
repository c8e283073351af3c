package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Reader é tudo que o motor de disponibilidade consulta.
type Reader interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// ativos, ordenados por horário de início
	ListWorkingHours(
		ctx context.Context,
		barberID uint,
		dayOfWeek int,
	) ([]models.WorkingHours, error)

	// do barbeiro OU globais (barber_id nulo), com date em [from, to)
	ListNonWorkingDays(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
	) ([]models.NonWorkingDay, error)

	// PENDING/CONFIRMED com date em [from, to)
	ListActiveAppointments(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
		excludeID *uint,
	) ([]models.Appointment, error)
}

type ListFilter struct {
	BarberID *uint
	Status   *Status
	From     *time.Time
	To       *time.Time // exclusivo
}

type Repository interface {
	Reader

	// -------- Catálogo --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetSetting(ctx context.Context, key string) (*models.Setting, error)

	// -------- Appointment --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Concorrência --------

	// LockBarber bloqueia a linha do barbeiro até o fim da transação,
	// serializando reservas concorrentes do mesmo barbeiro.
	LockBarber(ctx context.Context, id uint) error
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
