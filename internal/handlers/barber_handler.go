package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type BarberHandler struct {
	Resources
}

func NewBarberHandler(res Resources) *BarberHandler {
	return &BarberHandler{Resources: res.withDefaults()}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name   string  `json:"name" binding:"required,max=100"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Responses ---------

type BarberListItem struct {
	models.Barber
	AppointmentCount int64 `json:"appointment_count"`
}

// --------- Handlers ---------

func activeHours(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true).Order("day_of_week ASC, start_time ASC")
}

func (h *BarberHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var barbers []models.Barber
	if err := h.DB.WithContext(ctx).
		Preload("WorkingHours", activeHours).
		Where("active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	counts, err := h.appointmentCounts(c, barbers)
	if err != nil {
		h.dbError(c, err, "", "")
		return
	}

	items := make([]BarberListItem, 0, len(barbers))
	for _, b := range barbers {
		items = append(items, BarberListItem{Barber: b, AppointmentCount: counts[b.ID]})
	}

	httpresp.OK(c, items)
}

func (h *BarberHandler) appointmentCounts(c *gin.Context, barbers []models.Barber) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(barbers))
	if len(barbers) == 0 {
		return counts, nil
	}

	ids := make([]uint, 0, len(barbers))
	for _, b := range barbers {
		ids = append(ids, b.ID)
	}

	var rows []struct {
		BarberID uint
		Total    int64
	}
	if err := h.DB.WithContext(c.Request.Context()).
		Model(&models.Appointment{}).
		Select("barber_id, COUNT(*) AS total").
		Where("barber_id IN ?", ids).
		Group("barber_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.BarberID] = r.Total
	}
	return counts, nil
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	today := calendar.Format(calendar.Today())

	var barber models.Barber
	if err := h.DB.WithContext(c.Request.Context()).
		Preload("WorkingHours", activeHours).
		Preload("NonWorkingDays", func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ?", today).Order("date ASC")
		}).
		First(&barber, id).Error; err != nil {

		h.dbError(c, err, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	httpresp.OK(c, barber)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}

	barber := models.Barber{
		Name:   name,
		Email:  req.Email,
		Phone:  req.Phone,
		Active: true,
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Já existe um barbeiro com este e-mail.")
			return
		}
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "barber_created", "barber", &barber.ID, gin.H{"name": barber.Name}, false)
	httpresp.Created(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var barber models.Barber
	if err := db.First(&barber, id).Error; err != nil {
		h.dbError(c, err, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
			return
		}
		barber.Name = name
	}
	if req.Email != nil {
		barber.Email = req.Email
	}
	if req.Phone != nil {
		barber.Phone = req.Phone
	}
	activeChanged := req.Active != nil && *req.Active != barber.Active
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := db.Save(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Já existe um barbeiro com este e-mail.")
			return
		}
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "barber_updated", "barber", &barber.ID, req, activeChanged)
	httpresp.OK(c, barber)
}

// Delete só desativa: agendamentos antigos continuam apontando para ele.
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).
		Model(&models.Barber{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		h.dbError(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	h.changed(c, "barber_deactivated", "barber", &id, nil, true)
	httpresp.OK(c, gin.H{"message": "Barbeiro desativado."})
}
