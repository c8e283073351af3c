package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// UpdateAppointmentInput: campos nil não são alterados.
type UpdateAppointmentInput struct {
	ID uint

	BarberID  *uint
	ServiceID *uint
	Date      *string
	StartTime *string
	Status    *string

	ClientName  *string
	ClientEmail *string
	ClientPhone *string
	Notes       *string

	Actor string
}

func (in UpdateAppointmentInput) reschedules() bool {
	return in.BarberID != nil || in.ServiceID != nil || in.Date != nil || in.StartTime != nil
}

type UpdateAppointment struct {
	Deps
}

func NewUpdateAppointment(deps Deps) *UpdateAppointment {
	return &UpdateAppointment{Deps: deps.withDefaults()}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := loadAppointment(ctx, uc.Repo, in.ID)
	if err != nil {
		return nil, err
	}
	prevStatus := domain.Status(ap.Status)

	// --------------------------------------------------
	// Dados do cliente
	// --------------------------------------------------
	if in.ClientName != nil {
		if strings.TrimSpace(*in.ClientName) == "" {
			return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
		}
		ap.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientPhone != nil {
		if strings.TrimSpace(*in.ClientPhone) == "" {
			return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
		}
		ap.ClientPhone = strings.TrimSpace(*in.ClientPhone)
	}
	if in.ClientEmail != nil {
		ap.ClientEmail = strings.TrimSpace(*in.ClientEmail)
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	// --------------------------------------------------
	// Reagendamento: término sempre recalculado
	// --------------------------------------------------
	if in.reschedules() {
		if err := uc.reschedule(ctx, ap, in); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Status
	// --------------------------------------------------
	nextStatus := prevStatus
	if in.Status != nil {
		nextStatus, err = domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if nextStatus != prevStatus {
			domain.ApplyStatus(ap, nextStatus, uc.Now())
		}
	}

	// só revalida quando o resultado ocupa um horário que antes não ocupava
	// (ou ocupava em outro lugar)
	needsCheck := nextStatus.Active() &&
		(in.reschedules() || domain.Reactivates(prevStatus, nextStatus))

	write := func(tx domain.Repository) error {
		return tx.UpdateAppointment(ctx, ap)
	}

	if needsCheck {
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
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	if err != nil {
		return nil, err
	}

	uc.invalidateSlots(ctx)

	uc.Audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"date":      calendar.Format(ap.Date),
			"start":     ap.StartTime,
			"end":       ap.EndTime,
			"status":    ap.Status,
		},
	})

	uc.Log.Info("appointment updated",
		zap.Uint("id", ap.ID),
		zap.Bool("revalidated", needsCheck),
	)

	return reload(ctx, uc.Repo, ap), nil
}

func (uc *UpdateAppointment) reschedule(
	ctx context.Context,
	ap *models.Appointment,
	in UpdateAppointmentInput,
) error {

	if in.BarberID != nil {
		ap.BarberID = *in.BarberID
	}

	if in.Date != nil {
		d, err := calendar.ParseDate(*in.Date)
		if err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidDate)
		}
		ap.Date = d
	}

	if in.StartTime != nil {
		start, err := domain.NormalizeTime(*in.StartTime)
		if err != nil {
			return err
		}
		ap.StartTime = start
	}

	// serviço novo precisa estar ativo; o atual vale mesmo se desativado depois
	var svc *models.Service
	var err error
	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		svc, err = loadBookableService(ctx, uc.Repo, *in.ServiceID)
	} else {
		svc, err = uc.Repo.GetService(ctx, ap.ServiceID)
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ServiceNotFound()
		}
	}
	if err != nil {
		return err
	}
	ap.ServiceID = svc.ID

	end, err := domain.AddMinutesToTime(ap.StartTime, svc.DurationMin)
	if err != nil {
		return fmt.Errorf("appointment %d: %w", ap.ID, err)
	}
	ap.EndTime = end

	// associações carregadas não podem sobrescrever os IDs novos no Save
	ap.Barber = nil
	ap.Service = nil

	return nil
}
