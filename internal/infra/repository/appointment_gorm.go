package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// colunas date recebem "YYYY-MM-DD": sem conversão de fuso no servidor
func dateParam(t time.Time) string {
	return calendar.Format(t)
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) LockBarber(
	ctx context.Context,
	id uint,
) error {

	var barber models.Barber
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&barber, id).Error

	return notFound(err)
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetSetting(
	ctx context.Context,
	key string,
) (*models.Setting, error) {

	var st models.Setting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&st).Error; err != nil {
		return nil, notFound(err)
	}
	return &st, nil
}

// --------------------------------------------------
// Disponibilidade
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
	dayOfWeek int,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ? AND active = ?", barberID, dayOfWeek, true).
		Order("start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ListNonWorkingDays(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
) ([]models.NonWorkingDay, error) {

	var days []models.NonWorkingDay
	if err := r.db.WithContext(ctx).
		Where("(barber_id = ? OR barber_id IS NULL) AND date >= ? AND date < ?",
			barberID, dateParam(from), dateParam(to)).
		Order("barber_id NULLS LAST, id ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
	excludeID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where("barber_id = ? AND status IN ? AND date >= ? AND date < ?",
			barberID, activeStatuses(), dateParam(from), dateParam(to))

	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service")

	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("date >= ?", dateParam(*f.From))
	}
	if f.To != nil {
		q = q.Where("date < ?", dateParam(*f.To))
	}

	apps := []models.Appointment{}
	if err := q.
		Order("date ASC").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

// UpdateAppointment grava todas as colunas, inclusive valores zero.
// Save faria upsert quando a linha não existe; aqui isso vira ErrNotFound.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(ap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
