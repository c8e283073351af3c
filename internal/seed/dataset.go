package seed

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Dataset é a carga inicial de demonstração.
type Dataset struct {
	Barbers        []models.Barber
	Services       []models.Service
	Settings       []models.Setting
	NonWorkingDays []models.NonWorkingDay
}

type weeklyShift struct {
	day   int
	start string
	end   string
}

// segunda a sexta 09-18, sábado 09-14
var defaultWeek = []weeklyShift{
	{1, "09:00", "18:00"},
	{2, "09:00", "18:00"},
	{3, "09:00", "18:00"},
	{4, "09:00", "18:00"},
	{5, "09:00", "18:00"},
	{6, "09:00", "14:00"},
}

func strPtr(s string) *string { return &s }

func weekFor() []models.WorkingHours {
	hours := make([]models.WorkingHours, 0, len(defaultWeek))
	for _, s := range defaultWeek {
		hours = append(hours, models.WorkingHours{
			DayOfWeek: s.day,
			StartTime: s.start,
			EndTime:   s.end,
			Active:    true,
		})
	}
	return hours
}

func holiday(year int, month time.Month, day int, reason string) models.NonWorkingDay {
	return models.NonWorkingDay{
		Date:   time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Reason: reason,
	}
}

// NewDataset monta a carga com feriados globais de year e o Ano Novo seguinte.
func NewDataset(year int) Dataset {
	barbers := make([]models.Barber, 0, 2)
	for i, phone := range []string{"+55 11 91234-5678", "+55 11 99876-5432"} {
		barbers = append(barbers, models.Barber{
			Name:         fmt.Sprintf("Profissional %d", i+1),
			Email:        strPtr(fmt.Sprintf("profissional%d@example.com", i+1)),
			Phone:        strPtr(phone),
			Active:       true,
			WorkingHours: weekFor(),
		})
	}

	return Dataset{
		Barbers: barbers,
		Services: []models.Service{
			{Name: "Serviço Básico", Description: "Serviço padrão", DurationMin: 30, Price: 5000, Active: true},
			{Name: "Serviço Completo", Description: "Serviço completo com extras", DurationMin: 45, Price: 7500, Active: true},
			{Name: "Serviço Express", Description: "Serviço rápido", DurationMin: 20, Price: 3500, Active: true},
			{Name: "Serviço Premium", Description: "Serviço premium com atendimento especial", DurationMin: 60, Price: 9000, Active: true},
			{Name: "Serviço Especial", Description: "Serviço especializado", DurationMin: 30, Price: 4000, Active: true},
		},
		Settings: []models.Setting{
			{Key: "business_name", Value: "Minha Barbearia", Description: "Nome do negócio"},
			{Key: "business_email", Value: "contato@example.com", Description: "E-mail de contato"},
			{Key: "business_phone", Value: "+55 11 90000-0000", Description: "Telefone de contato"},
			{Key: "business_address", Value: "Rua de Exemplo, 123", Description: "Endereço do negócio"},
			{Key: "slot_interval", Value: "30", Description: "Intervalo entre horários (minutos)"},
			{Key: "advance_booking_days", Value: "30", Description: "Dias de antecedência para reservas"},
			{Key: "cancellation_hours", Value: "24", Description: "Horas mínimas para cancelar"},
			{Key: "timezone", Value: "America/Sao_Paulo", Description: "Fuso horário do negócio"},
		},
		NonWorkingDays: []models.NonWorkingDay{
			holiday(year, time.January, 1, "Ano Novo"),
			holiday(year, time.May, 1, "Dia do Trabalhador"),
			holiday(year, time.September, 7, "Independência"),
			holiday(year, time.November, 15, "Proclamação da República"),
			holiday(year, time.December, 25, "Natal"),
			holiday(year+1, time.January, 1, "Ano Novo"),
		},
	}
}

func (d Dataset) workingHoursCount() int {
	n := 0
	for _, b := range d.Barbers {
		n += len(b.WorkingHours)
	}
	return n
}
