package appointment

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListAppointmentsInput: Date tem precedência sobre From/To (ambos inclusivos).
type ListAppointmentsInput struct {
	BarberID *uint
	Status   string
	Date     string
	From     string
	To       string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]models.Appointment, error) {

	f := domain.ListFilter{BarberID: in.BarberID}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	switch {
	case in.Date != "":
		d, err := calendar.ParseDate(in.Date)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
		}
		from, to := calendar.DayBounds(d)
		f.From, f.To = &from, &to

	case in.From != "" || in.To != "":
		if in.From != "" {
			d, err := calendar.ParseDate(in.From)
			if err != nil {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
			}
			f.From = &d
		}
		if in.To != "" {
			d, err := calendar.ParseDate(in.To)
			if err != nil {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
			}
			_, end := calendar.DayBounds(d)
			f.To = &end
		}
	}

	aps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return aps, nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return loadAppointment(ctx, uc.repo, id)
}
