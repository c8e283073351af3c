package appointment

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifica por que um horário não pode ser reservado.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInactive            Kind = "inactive"
	KindBlocked             Kind = "blocked"
	KindNoScheduleForDay    Kind = "no_schedule_for_day"
	KindOutsideWorkingHours Kind = "outside_working_hours"
	KindSlotTaken           Kind = "slot_taken"
	KindMalformedTime       Kind = "malformed_time"
)

type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (w Window) String() string {
	return w.Start + "-" + w.End
}

// Rejection é uma recusa esperada (regra de negócio), nunca falha de infra.
type Rejection struct {
	Kind    Kind
	Message string
	Windows []Window
}

func (r *Rejection) Error() string {
	return r.Message
}

// AsRejection extrai a recusa de uma cadeia de erros.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

func reject(kind Kind, msg string) *Rejection {
	return &Rejection{Kind: kind, Message: msg}
}

func malformedTime(s string) *Rejection {
	return reject(KindMalformedTime, fmt.Sprintf("Horário inválido: %q (use HH:MM).", s))
}

func emptyInterval(start, end string) *Rejection {
	return reject(KindMalformedTime, fmt.Sprintf("Intervalo inválido: %s-%s (fim deve ser depois do início).", start, end))
}

func BarberNotFound() *Rejection {
	return reject(KindNotFound, "Barbeiro não encontrado.")
}

func BarberInactive() *Rejection {
	return reject(KindInactive, "Barbeiro não está ativo.")
}

func ServiceNotFound() *Rejection {
	return reject(KindNotFound, "Serviço não encontrado.")
}

func ServiceInactive() *Rejection {
	return reject(KindInactive, "Serviço não está ativo.")
}

func SlotTaken() *Rejection {
	return reject(KindSlotTaken, "O horário já está ocupado.")
}

func blocked(reason string) *Rejection {
	if strings.TrimSpace(reason) == "" {
		reason = "Dia não útil"
	}
	return reject(KindBlocked, "Indisponível: "+reason)
}

func noScheduleForDay() *Rejection {
	return reject(KindNoScheduleForDay, "O barbeiro não trabalha neste dia.")
}

func outsideWorkingHours(windows []Window) *Rejection {
	parts := make([]string, 0, len(windows))
	for _, w := range windows {
		parts = append(parts, w.String())
	}
	return &Rejection{
		Kind:    KindOutsideWorkingHours,
		Message: "Fora do horário de atendimento. Horários disponíveis: " + strings.Join(parts, ", "),
		Windows: windows,
	}
}
