package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type NonWorkingDayHandler struct {
	Resources
}

func NewNonWorkingDayHandler(res Resources) *NonWorkingDayHandler {
	return &NonWorkingDayHandler{Resources: res.withDefaults()}
}

// --------- Requests ---------

// barber_id nulo = feriado para todos.
type CreateNonWorkingDayRequest struct {
	BarberID *uint  `json:"barber_id,omitempty"`
	Date     string `json:"date" binding:"required"`
	Reason   string `json:"reason" binding:"max=255"`
}

type UpdateNonWorkingDayRequest struct {
	Date   *string `json:"date,omitempty"`
	Reason *string `json:"reason,omitempty" binding:"omitempty,max=255"`
}

func parseDateOr400(c *gin.Context, raw string) (time.Time, bool) {
	d, err := calendar.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida (use AAAA-MM-DD).")
		return time.Time{}, false
	}
	return d, true
}

// --------- Handlers ---------

func (h *NonWorkingDayHandler) List(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	from := calendar.Today()
	if raw := c.Query("from"); raw != "" {
		if from, ok = parseDateOr400(c, raw); !ok {
			return
		}
	}

	q := h.DB.WithContext(c.Request.Context()).Where("date >= ?", calendar.Format(from))

	if raw := c.Query("to"); raw != "" {
		to, ok := parseDateOr400(c, raw)
		if !ok {
			return
		}
		q = q.Where("date <= ?", calendar.Format(to))
	}

	if barberID != nil {
		q = q.Where("barber_id = ? OR barber_id IS NULL", *barberID)
	}

	var days []models.NonWorkingDay
	if err := q.
		Preload("Barber").
		Order("date ASC").
		Find(&days).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	httpresp.OK(c, days)
}

func (h *NonWorkingDayHandler) Create(c *gin.Context) {
	var req CreateNonWorkingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	date, ok := parseDateOr400(c, req.Date)
	if !ok {
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	if req.BarberID != nil {
		exists, err := barberExists(db, *req.BarberID)
		if err != nil {
			h.dbError(c, err, "", "")
			return
		}
		if !exists {
			httperr.BadRequest(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
	}

	day := models.NonWorkingDay{
		BarberID: req.BarberID,
		Date:     date,
		Reason:   req.Reason,
	}

	if err := db.Create(&day).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "non_working_day_created", "non_working_day", &day.ID, gin.H{"date": calendar.Format(date), "barber_id": req.BarberID}, true)
	httpresp.Created(c, day)
}

func (h *NonWorkingDayHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateNonWorkingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var day models.NonWorkingDay
	if err := db.First(&day, id).Error; err != nil {
		h.dbError(c, err, "non_working_day_not_found", "Dia não útil não encontrado.")
		return
	}

	if req.Date != nil {
		date, ok := parseDateOr400(c, *req.Date)
		if !ok {
			return
		}
		day.Date = date
	}
	if req.Reason != nil {
		day.Reason = *req.Reason
	}

	if err := db.Omit("Barber").Save(&day).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "non_working_day_updated", "non_working_day", &day.ID, req, true)
	httpresp.OK(c, day)
}

func (h *NonWorkingDayHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).Delete(&models.NonWorkingDay{}, id)
	if res.Error != nil {
		h.dbError(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "non_working_day_not_found", "Dia não útil não encontrado.")
		return
	}

	h.changed(c, "non_working_day_deleted", "non_working_day", &id, nil, true)
	httpresp.OK(c, gin.H{"message": "Dia não útil removido."})
}
