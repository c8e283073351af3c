package appointment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	Date      string
	StartTime string
	Notes     string

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{Deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	if in.BarberID == 0 || in.ServiceID == 0 ||
		strings.TrimSpace(in.ClientName) == "" ||
		strings.TrimSpace(in.ClientPhone) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	start, err := domain.NormalizeTime(in.StartTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Serviço → horário de término
	// --------------------------------------------------
	svc, err := loadBookableService(ctx, uc.Repo, in.ServiceID)
	if err != nil {
		return nil, err
	}

	end, err := domain.AddMinutesToTime(start, svc.DurationMin)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Validação + escrita sob lock do barbeiro
	// --------------------------------------------------
	ap := &models.Appointment{
		BarberID:    in.BarberID,
		ServiceID:   svc.ID,
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientEmail: strings.TrimSpace(in.ClientEmail),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	err = checkAndWrite(ctx, uc.Repo, domain.ValidationRequest{
		BarberID:  in.BarberID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, func(tx domain.Repository) error {
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateSlots(ctx)

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.Audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"date":      calendar.Format(ap.Date),
			"start":     ap.StartTime,
			"end":       ap.EndTime,
		},
	})

	uc.Log.Info("appointment created",
		zap.Uint("id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.String("date", calendar.Format(ap.Date)),
		zap.String("start", ap.StartTime),
	)

	return reload(ctx, uc.Repo, ap), nil
}
