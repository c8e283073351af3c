// Package apptest fornece um appointment.Repository em memória para testes.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Store struct {
	mu sync.Mutex
	// serializa transações, como o lock da linha do barbeiro faria
	txMu sync.Mutex

	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	settings     map[string]models.Setting
	hours        []models.WorkingHours
	days         []models.NonWorkingDay
	appointments map[uint]models.Appointment
	nextID       uint

	// Err, se definido, é devolvido por todas as leituras.
	Err error
	// ExclusionConflict simula a constraint de exclusão do Postgres na escrita.
	ExclusionConflict bool

	Calls map[string]int
}

func NewStore() *Store {
	return &Store{
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		settings:     map[string]models.Setting{},
		appointments: map[uint]models.Appointment{},
		Calls:        map[string]int{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) call(name string) {
	s.Calls[name]++
}

// -------- setup --------

func (s *Store) AddBarber(name string, active bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.barbers[id] = models.Barber{ID: id, Name: name, Active: active}
	return id
}

func (s *Store) AddService(name string, duration int, active bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.services[id] = models.Service{ID: id, Name: name, DurationMin: duration, Active: active}
	return id
}

func (s *Store) AddWorkingHours(barberID uint, dayOfWeek int, start, end string, active bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.hours = append(s.hours, models.WorkingHours{
		ID: id, BarberID: barberID, DayOfWeek: dayOfWeek,
		StartTime: start, EndTime: end, Active: active,
	})
	return id
}

// AddNonWorkingDay com barberID nil cria um feriado global.
func (s *Store) AddNonWorkingDay(barberID *uint, date time.Time, reason string) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.days = append(s.days, models.NonWorkingDay{ID: id, BarberID: barberID, Date: date, Reason: reason})
	return id
}

func (s *Store) AddAppointment(barberID, serviceID uint, date time.Time, start, end string, status domain.Status) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.appointments[id] = models.Appointment{
		ID: id, BarberID: barberID, ServiceID: serviceID, Date: date,
		StartTime: start, EndTime: end, Status: string(status),
		ClientName: "Cliente", ClientPhone: "000",
	}
	return id
}

func (s *Store) SetSetting(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = models.Setting{Key: key, Value: value}
}

func (s *Store) Appointment(id uint) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[id]
	return ap, ok
}

func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// -------- Reader --------

func (s *Store) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("GetBarber")
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.barbers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (s *Store) ListWorkingHours(_ context.Context, barberID uint, dayOfWeek int) ([]models.WorkingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("ListWorkingHours")
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.WorkingHours
	for _, wh := range s.hours {
		if wh.BarberID == barberID && wh.DayOfWeek == dayOfWeek && wh.Active {
			out = append(out, wh)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *Store) ListNonWorkingDays(_ context.Context, barberID uint, from, to time.Time) ([]models.NonWorkingDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("ListNonWorkingDays")
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.NonWorkingDay
	for _, d := range s.days {
		if d.BarberID != nil && *d.BarberID != barberID {
			continue
		}
		if d.Date.Before(from) || !d.Date.Before(to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) ListActiveAppointments(_ context.Context, barberID uint, from, to time.Time, excludeID *uint) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("ListActiveAppointments")
	if s.Err != nil {
		return nil, s.Err
	}
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.BarberID != barberID || !domain.Status(ap.Status).Active() {
			continue
		}
		if ap.Date.Before(from) || !ap.Date.Before(to) {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		out = append(out, ap)
	}
	sortAppointments(out)
	return out, nil
}

// -------- Repository --------

func (s *Store) GetService(_ context.Context, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("GetService")
	if s.Err != nil {
		return nil, s.Err
	}
	sv, ok := s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sv, nil
}

func (s *Store) GetSetting(_ context.Context, key string) (*models.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("GetSetting")
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.settings[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("GetAppointment")
	if s.Err != nil {
		return nil, s.Err
	}
	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.attach(&ap)
	return &ap, nil
}

func (s *Store) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("ListAppointments")
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if f.BarberID != nil && ap.BarberID != *f.BarberID {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		if f.From != nil && ap.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.Date.Before(*f.To) {
			continue
		}
		s.attach(&ap)
		out = append(out, ap)
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("CreateAppointment")
	if s.ExclusionConflict {
		return exclusionViolation()
	}
	ap.ID = s.id()
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	stored := *ap
	stored.Barber, stored.Service = nil, nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("UpdateAppointment")
	if _, ok := s.appointments[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.ExclusionConflict {
		return exclusionViolation()
	}
	ap.UpdatedAt = time.Now()
	stored := *ap
	stored.Barber, stored.Service = nil, nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("DeleteAppointment")
	if _, ok := s.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (s *Store) LockBarber(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.call("LockBarber")
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.barbers[id]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Transaction desfaz as alterações de appointments se fn falhar.
func (s *Store) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[uint]models.Appointment, len(s.appointments))
	for k, v := range s.appointments {
		snapshot[k] = v
	}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.appointments = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) attach(ap *models.Appointment) {
	if b, ok := s.barbers[ap.BarberID]; ok {
		ap.Barber = &b
	}
	if sv, ok := s.services[ap.ServiceID]; ok {
		ap.Service = &sv
	}
}

func sortAppointments(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if !aps[i].Date.Equal(aps[j].Date) {
			return aps[i].Date.Before(aps[j].Date)
		}
		if aps[i].StartTime != aps[j].StartTime {
			return aps[i].StartTime < aps[j].StartTime
		}
		return aps[i].ID < aps[j].ID
	})
}

func exclusionViolation() error {
	return &pgconn.PgError{Code: "23P01", ConstraintName: "appointments_no_overlap"}
}

var _ domain.Repository = (*Store)(nil)
