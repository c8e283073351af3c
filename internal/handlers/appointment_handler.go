package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *usecase.CreateAppointment
	update *usecase.UpdateAppointment
	status *usecase.ChangeStatus
	remove *usecase.DeleteAppointment
	list   *usecase.ListAppointments
	get    *usecase.GetAppointment
	slots  *usecase.GetAvailableSlots
	log    *zap.Logger
}

// SlotSettings vem da configuração: passo padrão e duração sem serviço.
type SlotSettings struct {
	Step            int
	DefaultDuration int
}

func NewAppointmentHandler(deps usecase.Deps, slots SlotSettings) *AppointmentHandler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentHandler{
		create: usecase.NewCreateAppointment(deps),
		update: usecase.NewUpdateAppointment(deps),
		status: usecase.NewChangeStatus(deps),
		remove: usecase.NewDeleteAppointment(deps),
		list:   usecase.NewListAppointments(deps.Repo),
		get:    usecase.NewGetAppointment(deps.Repo),
		slots:  usecase.NewGetAvailableSlots(deps, slots.Step, slots.DefaultDuration),
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes" binding:"max=255"`
}

type UpdateAppointmentRequest struct {
	BarberID    *uint   `json:"barber_id,omitempty"`
	ServiceID   *uint   `json:"service_id,omitempty"`
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	Status      *string `json:"status,omitempty"`
	ClientName  *string `json:"client_name,omitempty"`
	ClientEmail *string `json:"client_email,omitempty" binding:"omitempty,email"`
	ClientPhone *string `json:"client_phone,omitempty"`
	Notes       *string `json:"notes,omitempty" binding:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	barberID, ok := queryID(c, "barber_id")
	if !ok {
		return
	}

	aps, err := h.list.Execute(c.Request.Context(), usecase.ListAppointmentsInput{
		BarberID: barberID,
		Status:   c.Query("status"),
		Date:     c.Query("date"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, aps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	barberID, ok := paramID(c, "barberId")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}

	out, err := h.slots.Execute(c.Request.Context(), usecase.AvailableSlotsInput{
		BarberID:  barberID,
		Date:      c.Query("date"),
		ServiceID: serviceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		Actor:       middleware.Actor(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), usecase.UpdateAppointmentInput{
		ID:          id,
		BarberID:    req.BarberID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Status:      req.Status,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
		Actor:       middleware.Actor(c),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "status_required", "Status é obrigatório.")
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), id, req.Status, middleware.Actor(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.Actor(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Agendamento removido."})
}
