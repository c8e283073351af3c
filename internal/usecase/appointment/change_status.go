package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ChangeStatus struct {
	Deps
}

func NewChangeStatus(deps Deps) *ChangeStatus {
	return &ChangeStatus{Deps: deps.withDefaults()}
}

// Execute troca o status. Voltar de um status que libera o horário para
// PENDING/CONFIRMED exige o horário ainda livre.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	id uint,
	status string,
	actor string,
) (*models.Appointment, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := loadAppointment(ctx, uc.Repo, id)
	if err != nil {
		return nil, err
	}
	prev := domain.Status(ap.Status)

	domain.ApplyStatus(ap, next, uc.Now())
	ap.Barber = nil
	ap.Service = nil

	write := func(tx domain.Repository) error {
		return tx.UpdateAppointment(ctx, ap)
	}

	if domain.Reactivates(prev, next) {
		err = checkAndWrite(ctx, uc.Repo, domain.ValidationRequest{
			BarberID:             ap.BarberID,
			Date:                 ap.Date,
			StartTime:            ap.StartTime,
			EndTime:              ap.EndTime,
			ExcludeAppointmentID: &ap.ID,
		}, write)
	} else {
		err = write(uc.Repo)
		if httperr.IsExclusionConflict(err) {
			err = domain.SlotTaken()
		}
	}
	if err != nil {
		return nil, err
	}

	if prev.Active() != next.Active() {
		uc.invalidateSlots(ctx)
	}

	uc.Audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": string(prev), "to": string(next)},
	})

	uc.Log.Info("appointment status changed",
		zap.Uint("id", ap.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)

	return reload(ctx, uc.Repo, ap), nil
}
