package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(deps Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: deps.withDefaults()}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint, actor string) error {
	err := uc.Repo.DeleteAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	uc.invalidateSlots(ctx)

	uc.Audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return nil
}
