package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint    `json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber,omitempty"`

	ServiceID uint     `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:30;not null" json:"client_phone"`

	Date      time.Time `gorm:"type:date;not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status string `gorm:"size:20" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
