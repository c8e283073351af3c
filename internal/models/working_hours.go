package models

import "time"

type WorkingHours struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	BarberID uint    `json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	// 0 = domingo
	DayOfWeek int `json:"day_of_week"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
