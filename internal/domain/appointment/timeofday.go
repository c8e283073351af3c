package appointment

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes converte "HH:MM" em minutos desde a meia-noite.
// A hora não tem limite superior aqui ("24:00" é aceito como fim de expediente).
func TimeToMinutes(hhmm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok || !isDigits(h, 1, 2) || !isDigits(m, 2, 2) {
		return 0, malformedTime(hhmm)
	}

	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	if minutes > 59 {
		return 0, malformedTime(hhmm)
	}

	return hours*60 + minutes, nil
}

// MinutesToTime é o inverso de TimeToMinutes. Não faz wrap em 1440:
// 1450 vira "24:10".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func AddMinutesToTime(hhmm string, delta int) (string, error) {
	m, err := TimeToMinutes(hhmm)
	if err != nil {
		return "", err
	}
	return MinutesToTime(m + delta), nil
}

// IntervalsOverlap trata os intervalos como semiabertos [start, end):
// 09:00-10:00 e 10:00-11:00 não se sobrepõem.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

func TimesOverlap(startA, endA, startB, endB string) (bool, error) {
	var m [4]int
	for i, s := range []string{startA, endA, startB, endB} {
		v, err := TimeToMinutes(s)
		if err != nil {
			return false, err
		}
		m[i] = v
	}
	return IntervalsOverlap(m[0], m[1], m[2], m[3]), nil
}

// NormalizeTime devolve o horário no formato canônico "HH:MM".
func NormalizeTime(hhmm string) (string, error) {
	m, err := TimeToMinutes(hhmm)
	if err != nil {
		return "", err
	}
	return MinutesToTime(m), nil
}

func isDigits(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
