package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ServiceHandler struct {
	Resources
}

func NewServiceHandler(res Resources) *ServiceHandler {
	return &ServiceHandler{Resources: res.withDefaults()}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"max=255"`
	DurationMin int      `json:"duration" binding:"required,min=1"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Active      *bool    `json:"active,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=255"`
	DurationMin *int     `json:"duration,omitempty" binding:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.DB.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	httpresp.OK(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.DB.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		h.dbError(c, err, "service_not_found", "Serviço não encontrado.")
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}

	service := models.Service{
		Name:        name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       *req.Price,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.DB.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "service_created", "service", &service.ID, gin.H{"name": service.Name}, false)
	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		h.dbError(c, err, "service_not_found", "Serviço não encontrado.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
			return
		}
		service.Name = name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := db.Save(&service).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	// duração muda o tamanho dos slots calculados
	h.changed(c, "service_updated", "service", &service.ID, req, req.DurationMin != nil)
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res := h.DB.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", false)
	if res.Error != nil {
		h.dbError(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	h.changed(c, "service_deactivated", "service", &id, nil, false)
	httpresp.OK(c, gin.H{"message": "Serviço desativado."})
}
