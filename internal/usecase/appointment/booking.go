package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// DEPENDÊNCIAS COMUNS
// ======================================================

// Deps agrupa o que todos os casos de uso de agendamento recebem.
type Deps struct {
	Repo  domain.Repository
	Audit *audit.Dispatcher
	Cache SlotCache
	Log   *zap.Logger
	Now   func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = NopSlotCache{}
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// ======================================================
// RESERVA TRANSACIONAL
// ======================================================

// checkAndWrite roda validação e escrita na mesma transação, com a linha do
// barbeiro bloqueada. Duas reservas do mesmo barbeiro nunca validam juntas.
func checkAndWrite(
	ctx context.Context,
	repo domain.Repository,
	req domain.ValidationRequest,
	write func(tx domain.Repository) error,
) error {

	err := repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarber(ctx, req.BarberID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.BarberNotFound()
			}
			return fmt.Errorf("lock barber: %w", err)
		}

		res, err := domain.NewValidator(tx).Validate(ctx, req)
		if err != nil {
			return err
		}
		if !res.Valid {
			return res.Rejection
		}

		return write(tx)
	})

	// a constraint de exclusão pega quem escreveu por fora do serviço
	if httperr.IsExclusionConflict(err) {
		return domain.SlotTaken()
	}
	return err
}

// loadBookableService exige serviço existente e ativo.
func loadBookableService(ctx context.Context, repo domain.Repository, id uint) (*models.Service, error) {
	svc, err := repo.GetService(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ServiceNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if !svc.Active {
		return nil, domain.ServiceInactive()
	}
	return svc, nil
}

func loadAppointment(ctx context.Context, repo domain.Repository, id uint) (*models.Appointment, error) {
	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return ap, nil
}

// invalidateSlots descarta os slots em cache; falha aqui só vira log.
func (d Deps) invalidateSlots(ctx context.Context) {
	if err := d.Cache.Invalidate(ctx); err != nil {
		d.Log.Warn("slot cache invalidation failed", zap.Error(err))
	}
}

// reload devolve o agendamento com barbeiro e serviço carregados.
func reload(ctx context.Context, repo domain.Repository, ap *models.Appointment) *models.Appointment {
	full, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return ap
	}
	return full
}
