// Package calendar trata datas de calendário sem fuso horário: tudo é
// horário de parede local, representado em UTC à meia-noite.
package calendar

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate aceita "2006-01-02" ou um timestamp RFC3339; neste caso só a
// parte de data do relógio de parede é considerada.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Day descarta hora e fuso, mantendo ano/mês/dia do relógio de parede.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds devolve [meia-noite, meia-noite seguinte) do dia de d.
func DayBounds(d time.Time) (start, end time.Time) {
	start = Day(d)
	return start, start.AddDate(0, 0, 1)
}

// DayOfWeek: 0 = domingo ... 6 = sábado.
func DayOfWeek(d time.Time) int {
	return int(d.Weekday())
}

func Format(d time.Time) string {
	return d.Format(DateLayout)
}

func Today() time.Time {
	return Day(time.Now())
}
