package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursHandler struct {
	Resources
}

func NewWorkingHoursHandler(res Resources) *WorkingHoursHandler {
	return &WorkingHoursHandler{Resources: res.withDefaults()}
}

// --------- Requests ---------

type CreateWorkingHoursRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    *bool  `json:"active,omitempty"`
}

type UpdateWorkingHoursRequest struct {
	DayOfWeek *int    `json:"day_of_week,omitempty" binding:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type ScheduleWindow struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// BatchWorkingHoursRequest substitui todas as janelas de um dia (turnos
// partidos). Lista vazia deixa o dia sem expediente.
type BatchWorkingHoursRequest struct {
	BarberID  uint             `json:"barber_id" binding:"required"`
	DayOfWeek *int             `json:"day_of_week" binding:"required,min=0,max=6"`
	Schedules []ScheduleWindow `json:"schedules" binding:"dive"`
}

var errUnknownBarber = errors.New("unknown barber")

// --------- Validação ---------

// normalizeWindow devolve início e fim em HH:MM, exigindo início < fim
// dentro do dia (fim máximo 24:00).
func normalizeWindow(c *gin.Context, start, end string) (string, string, bool) {
	s, errS := domain.TimeToMinutes(start)
	e, errE := domain.TimeToMinutes(end)
	if errS != nil || errE != nil || e > 24*60 {
		httperr.BadRequest(c, "invalid_time_format", "Horário inválido (use HH:MM).")
		return "", "", false
	}
	if s >= e {
		httperr.BadRequest(c, "invalid_time_range", "Horário de início deve ser anterior ao de término.")
		return "", "", false
	}
	return domain.MinutesToTime(s), domain.MinutesToTime(e), true
}

func barberExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Barber{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------- Handlers ---------

func (h *WorkingHoursHandler) List(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	q := h.DB.WithContext(c.Request.Context()).Where("active = ?", true)
	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var hours []models.WorkingHours
	if err := q.
		Order("barber_id ASC, day_of_week ASC, start_time ASC").
		Find(&hours).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	httpresp.OK(c, hours)
}

func (h *WorkingHoursHandler) ListByBarber(c *gin.Context) {
	barberID, ok := paramID(c, "barberId")
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.DB.WithContext(c.Request.Context()).
		Where("barber_id = ? AND active = ?", barberID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&hours).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	httpresp.OK(c, hours)
}

func (h *WorkingHoursHandler) Create(c *gin.Context) {
	var req CreateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	start, end, ok := normalizeWindow(c, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	exists, err := barberExists(db, req.BarberID)
	if err != nil {
		h.dbError(c, err, "", "")
		return
	}
	if !exists {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	wh := models.WorkingHours{
		BarberID:  req.BarberID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
	if req.Active != nil {
		wh.Active = *req.Active
	}

	if err := db.Create(&wh).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "working_hours_created", "working_hours", &wh.ID, wh, true)
	httpresp.Created(c, wh)
}

func (h *WorkingHoursHandler) Batch(c *gin.Context) {
	var req BatchWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	rows := make([]models.WorkingHours, 0, len(req.Schedules))
	for _, s := range req.Schedules {
		start, end, ok := normalizeWindow(c, s.StartTime, s.EndTime)
		if !ok {
			return
		}
		rows = append(rows, models.WorkingHours{
			BarberID:  req.BarberID,
			DayOfWeek: *req.DayOfWeek,
			StartTime: start,
			EndTime:   end,
			Active:    true,
		})
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		exists, err := barberExists(tx, req.BarberID)
		if err != nil {
			return err
		}
		if !exists {
			return errUnknownBarber
		}

		if err := tx.
			Where("barber_id = ? AND day_of_week = ?", req.BarberID, *req.DayOfWeek).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if errors.Is(err, errUnknownBarber) {
		httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}
	if err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "working_hours_replaced", "barber", &req.BarberID, req, true)
	httpresp.OK(c, rows)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var wh models.WorkingHours
	if err := db.First(&wh, id).Error; err != nil {
		h.dbError(c, err, "working_hours_not_found", "Horário não encontrado.")
		return
	}

	start, end := wh.StartTime, wh.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	start, end, ok = normalizeWindow(c, start, end)
	if !ok {
		return
	}

	wh.StartTime = start
	wh.EndTime = end
	if req.DayOfWeek != nil {
		wh.DayOfWeek = *req.DayOfWeek
	}
	if req.Active != nil {
		wh.Active = *req.Active
	}

	if err := db.Omit("Barber").Save(&wh).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "working_hours_updated", "working_hours", &wh.ID, req, true)
	httpresp.OK(c, wh)
}

func (h *WorkingHoursHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).Delete(&models.WorkingHours{}, id)
	if res.Error != nil {
		h.dbError(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "working_hours_not_found", "Horário não encontrado.")
		return
	}

	h.changed(c, "working_hours_deleted", "working_hours", &id, nil, true)
	httpresp.OK(c, gin.H{"message": "Horário removido."})
}
