package appointment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// SettingSlotInterval sobrescreve o passo configurado, por negócio.
const SettingSlotInterval = "slot_interval"

type AvailableSlotsInput struct {
	BarberID  uint
	Date      string
	ServiceID *uint
}

type AvailableSlotsOutput struct {
	BarberID        uint     `json:"barber_id"`
	Date            string   `json:"date"`
	ServiceDuration int      `json:"service_duration"`
	AvailableSlots  []string `json:"available_slots"`
}

type GetAvailableSlots struct {
	Deps
	defaultStep     int
	defaultDuration int
}

// NewGetAvailableSlots recebe o passo e a duração padrão da configuração.
func NewGetAvailableSlots(deps Deps, step, defaultDuration int) *GetAvailableSlots {
	if step <= 0 {
		step = domain.DefaultSlotStep
	}
	if defaultDuration <= 0 {
		defaultDuration = 30
	}
	return &GetAvailableSlots{
		Deps:            deps.withDefaults(),
		defaultStep:     step,
		defaultDuration: defaultDuration,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in AvailableSlotsInput,
) (*AvailableSlotsOutput, error) {

	if strings.TrimSpace(in.Date) == "" {
		return nil, httperr.ErrBusiness(httperr.CodeDateRequired)
	}
	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	// --------------------------------------------------
	// Barbeiro: inexistente é 404, inativo não tem horários
	// --------------------------------------------------
	barber, err := uc.Repo.GetBarber(ctx, in.BarberID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.BarberNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("get barber: %w", err)
	}

	duration := uc.defaultDuration
	if in.ServiceID != nil {
		svc, err := uc.Repo.GetService(ctx, *in.ServiceID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ServiceNotFound()
		}
		if err != nil {
			return nil, fmt.Errorf("get service: %w", err)
		}
		duration = svc.DurationMin
	}

	out := &AvailableSlotsOutput{
		BarberID:        in.BarberID,
		Date:            calendar.Format(date),
		ServiceDuration: duration,
		AvailableSlots:  []string{},
	}
	if !barber.Active {
		return out, nil
	}

	step := uc.step(ctx)
	key := SlotKey{BarberID: in.BarberID, Date: out.Date, Duration: duration, Step: step}

	cached, gen, ok := uc.Cache.Get(ctx, key)
	if ok {
		out.AvailableSlots = cached
		return out, nil
	}

	slots, err := domain.NewSlotEnumerator(uc.Repo, step).Enumerate(ctx, in.BarberID, date, duration)
	if err != nil {
		return nil, err
	}

	uc.Cache.Set(ctx, key, gen, slots)
	out.AvailableSlots = slots
	return out, nil
}

// step lê o setting slot_interval; ausente ou inválido cai no padrão.
func (uc *GetAvailableSlots) step(ctx context.Context) int {
	st, err := uc.Repo.GetSetting(ctx, SettingSlotInterval)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.Log.Warn("read slot_interval setting", zap.Error(err))
		}
		return uc.defaultStep
	}

	n, err := strconv.Atoi(strings.TrimSpace(st.Value))
	if err != nil || n <= 0 {
		uc.Log.Warn("invalid slot_interval setting", zap.String("value", st.Value))
		return uc.defaultStep
	}
	return n
}
