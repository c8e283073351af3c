package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
)

type ValidationRequest struct {
	BarberID  uint
	Date      time.Time
	StartTime string
	EndTime   string

	// reagendamento: a própria reserva não conflita consigo mesma
	ExcludeAppointmentID *uint
}

type Result struct {
	Valid     bool
	Rejection *Rejection
}

func valid() Result {
	return Result{Valid: true}
}

func rejected(r *Rejection) Result {
	return Result{Rejection: r}
}

// Validator decide se um barbeiro pode atender [StartTime, EndTime) na data.
// Só lê do repositório; a escrita fica com o caso de uso.
type Validator struct {
	repo Reader
}

func NewValidator(repo Reader) *Validator {
	return &Validator{repo: repo}
}

// Validate roda as checagens em ordem e para na primeira recusa:
// barbeiro, dia não útil, expediente, conflito. O erro só é preenchido
// em falha de infraestrutura.
func (v *Validator) Validate(ctx context.Context, in ValidationRequest) (Result, error) {
	start, err := TimeToMinutes(in.StartTime)
	if err != nil {
		r, _ := AsRejection(err)
		return rejected(r), nil
	}
	end, err := TimeToMinutes(in.EndTime)
	if err != nil {
		r, _ := AsRejection(err)
		return rejected(r), nil
	}
	if end <= start {
		return rejected(emptyInterval(in.StartTime, in.EndTime)), nil
	}

	// 1. barbeiro
	barber, err := v.repo.GetBarber(ctx, in.BarberID)
	if errors.Is(err, ErrNotFound) {
		return rejected(BarberNotFound()), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("get barber: %w", err)
	}
	if !barber.Active {
		return rejected(BarberInactive()), nil
	}

	dayStart, dayEnd := calendar.DayBounds(in.Date)

	// 2. dia não útil (do barbeiro ou global)
	days, err := v.repo.ListNonWorkingDays(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return Result{}, fmt.Errorf("list non-working days: %w", err)
	}
	if len(days) > 0 {
		return rejected(blocked(days[0].Reason)), nil
	}

	// 3. expediente
	hours, err := v.repo.ListWorkingHours(ctx, in.BarberID, calendar.DayOfWeek(dayStart))
	if err != nil {
		return Result{}, fmt.Errorf("list working hours: %w", err)
	}
	if len(hours) == 0 {
		return rejected(noScheduleForDay()), nil
	}

	windows := make([]Window, 0, len(hours))
	contained := false
	for _, wh := range hours {
		ws, err := TimeToMinutes(wh.StartTime)
		if err != nil {
			return Result{}, fmt.Errorf("working hours %d: %w", wh.ID, err)
		}
		we, err := TimeToMinutes(wh.EndTime)
		if err != nil {
			return Result{}, fmt.Errorf("working hours %d: %w", wh.ID, err)
		}

		windows = append(windows, Window{Start: wh.StartTime, End: wh.EndTime})
		if ws <= start && end <= we {
			contained = true
		}
	}
	if !contained {
		return rejected(outsideWorkingHours(windows)), nil
	}

	// 4. conflito com reservas ativas
	existing, err := v.repo.ListActiveAppointments(ctx, in.BarberID, dayStart, dayEnd, in.ExcludeAppointmentID)
	if err != nil {
		return Result{}, fmt.Errorf("list appointments: %w", err)
	}
	busy, err := busyIntervals(existing)
	if err != nil {
		return Result{}, err
	}
	if overlapsAny(start, end, busy) {
		return rejected(SlotTaken()), nil
	}

	return valid(), nil
}
