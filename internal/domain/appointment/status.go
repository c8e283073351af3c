package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// ActiveStatuses ocupam o horário; os demais liberam o slot.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}
}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
}

func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

// Reactivates indica se a transição volta a ocupar um horário já liberado,
// o que exige nova validação de disponibilidade.
func Reactivates(from, to Status) bool {
	return !from.Active() && to.Active()
}

// ===============================
// Domain Actions
// ===============================

// ApplyStatus troca o status e carimba cancelamento/conclusão.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) {
	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
}
