package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	usecase "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ConfigHandler expõe a tabela settings (chave/valor).
type ConfigHandler struct {
	Resources
}

func NewConfigHandler(res Resources) *ConfigHandler {
	return &ConfigHandler{Resources: res.withDefaults()}
}

type SettingValue struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

type UpsertSettingRequest struct {
	Key         string `json:"key" binding:"required,max=100"`
	Value       string `json:"value" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

type UpdateSettingRequest struct {
	Value       *string `json:"value,omitempty"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// settings que mudam o cálculo de slots
func affectsSlots(key string) bool {
	return key == usecase.SettingSlotInterval
}

func (h *ConfigHandler) List(c *gin.Context) {
	var settings []models.Setting
	if err := h.DB.WithContext(c.Request.Context()).
		Order("key ASC").
		Find(&settings).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	out := make(map[string]SettingValue, len(settings))
	for _, s := range settings {
		out[s.Key] = SettingValue{Value: s.Value, Description: s.Description}
	}

	httpresp.OK(c, out)
}

func (h *ConfigHandler) Get(c *gin.Context) {
	var setting models.Setting
	if err := h.DB.WithContext(c.Request.Context()).
		Where("key = ?", c.Param("key")).
		First(&setting).Error; err != nil {

		h.dbError(c, err, "setting_not_found", "Configuração não encontrada.")
		return
	}

	httpresp.OK(c, setting)
}

func (h *ConfigHandler) Upsert(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	key := strings.TrimSpace(req.Key)
	if key == "" {
		httperr.BadRequest(c, "key_required", "Chave é obrigatória.")
		return
	}

	setting := models.Setting{Key: key, Value: req.Value, Description: req.Description}

	if err := h.DB.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
		}).
		Create(&setting).Error; err != nil {

		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "setting_upserted", "setting", nil, gin.H{"key": key, "value": req.Value}, affectsSlots(key))
	httpresp.OK(c, setting)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var setting models.Setting
	if err := db.Where("key = ?", c.Param("key")).First(&setting).Error; err != nil {
		h.dbError(c, err, "setting_not_found", "Configuração não encontrada.")
		return
	}

	if req.Value != nil {
		setting.Value = *req.Value
	}
	if req.Description != nil {
		setting.Description = *req.Description
	}

	if err := db.Save(&setting).Error; err != nil {
		h.dbError(c, err, "", "")
		return
	}

	h.changed(c, "setting_updated", "setting", nil, gin.H{"key": setting.Key, "value": setting.Value}, affectsSlots(setting.Key))
	httpresp.OK(c, setting)
}

func (h *ConfigHandler) Delete(c *gin.Context) {
	key := c.Param("key")

	res := h.DB.WithContext(c.Request.Context()).
		Where("key = ?", key).
		Delete(&models.Setting{})
	if res.Error != nil {
		h.dbError(c, res.Error, "", "")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "setting_not_found", "Configuração não encontrada.")
		return
	}

	h.changed(c, "setting_deleted", "setting", nil, gin.H{"key": key}, affectsSlots(key))
	httpresp.OK(c, gin.H{"message": "Configuração removida."})
}
