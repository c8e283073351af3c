package models

import "time"

// NonWorkingDay bloqueia um dia inteiro. BarberID nil = feriado global.
type NonWorkingDay struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	BarberID *uint   `json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Reason string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
