package models

import "time"

// Service é um serviço reservável (corte, barba...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"column:duration" json:"duration"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
