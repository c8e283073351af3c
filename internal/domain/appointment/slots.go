package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const DefaultSlotStep = 30

type interval struct {
	start int
	end   int
}

// SlotEnumerator lista os horários de início livres de um dia.
// Não guarda estado entre chamadas.
type SlotEnumerator struct {
	repo Reader
	step int
}

// NewSlotEnumerator usa o passo informado em minutos; valores <= 0 caem
// no padrão de 30.
func NewSlotEnumerator(repo Reader, step int) *SlotEnumerator {
	if step <= 0 {
		step = DefaultSlotStep
	}
	return &SlotEnumerator{repo: repo, step: step}
}

func (e *SlotEnumerator) Step() int {
	return e.step
}

// Enumerate percorre cada janela de expediente, na ordem do repositório,
// avançando em passos fixos independentes da duração do serviço.
// Lista vazia não é erro: dia cheio, folga ou sem expediente.
func (e *SlotEnumerator) Enumerate(
	ctx context.Context,
	barberID uint,
	date time.Time,
	duration int,
) ([]string, error) {

	if duration <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDuration)
	}

	dayStart, dayEnd := calendar.DayBounds(date)

	hours, err := e.repo.ListWorkingHours(ctx, barberID, calendar.DayOfWeek(dayStart))
	if err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	if len(hours) == 0 {
		return []string{}, nil
	}

	// sem suporte a bloqueio parcial: qualquer registro fecha o dia
	days, err := e.repo.ListNonWorkingDays(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list non-working days: %w", err)
	}
	if len(days) > 0 {
		return []string{}, nil
	}

	existing, err := e.repo.ListActiveAppointments(ctx, barberID, dayStart, dayEnd, nil)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	busy, err := busyIntervals(existing)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for _, wh := range hours {
		ws, err := TimeToMinutes(wh.StartTime)
		if err != nil {
			return nil, fmt.Errorf("working hours %d: %w", wh.ID, err)
		}
		we, err := TimeToMinutes(wh.EndTime)
		if err != nil {
			return nil, fmt.Errorf("working hours %d: %w", wh.ID, err)
		}

		for cur := ws; cur+duration <= we; cur += e.step {
			if !overlapsAny(cur, cur+duration, busy) {
				slots = append(slots, MinutesToTime(cur))
			}
		}
	}

	return slots, nil
}

func busyIntervals(aps []models.Appointment) ([]interval, error) {
	out := make([]interval, 0, len(aps))
	for _, ap := range aps {
		s, err := TimeToMinutes(ap.StartTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", ap.ID, err)
		}
		en, err := TimeToMinutes(ap.EndTime)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", ap.ID, err)
		}
		out = append(out, interval{start: s, end: en})
	}
	return out, nil
}

func overlapsAny(start, end int, busy []interval) bool {
	for _, b := range busy {
		if IntervalsOverlap(start, end, b.start, b.end) {
			return true
		}
	}
	return false
}
