package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := calendar.ParseDate(fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		if to, err := calendar.ParseDate(toStr); err == nil {
			_, end := calendar.DayBounds(to)
			q = q.Where("created_at < ?", end)
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}

// pageParams lê page/limit com limite de 200 por página.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return page, limit
}
