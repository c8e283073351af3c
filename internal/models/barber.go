package models

import "time"

type Barber struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Name  string  `gorm:"size:100;not null" json:"name"`
	Email *string `gorm:"size:100" json:"email"`
	Phone *string `gorm:"size:30" json:"phone"`

	// sem default no gorm: um false explícito precisa chegar ao banco
	Active bool `json:"active"`

	WorkingHours   []WorkingHours  `json:"working_hours,omitempty"`
	NonWorkingDays []NonWorkingDay `json:"non_working_days,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
