package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type rejectionBody struct {
	Code    string          `json:"error_code"`
	Message string          `json:"message"`
	Windows []domain.Window `json:"windows,omitempty"`
}

func rejectionStatus(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindSlotTaken:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respondError traduz erros de caso de uso em HTTP. Recusas e erros de
// negócio viram 4xx; qualquer outra coisa é 500 e vai para o log.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if r, ok := domain.AsRejection(err); ok {
		c.JSON(rejectionStatus(r.Kind), rejectionBody{
			Code:    string(r.Kind),
			Message: r.Message,
			Windows: r.Windows,
		})
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.WriteBusiness(c, be)
		return
	}

	log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Erro interno.")
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos: "+err.Error())
}

// --------------------------------------------------
// Parâmetros
// --------------------------------------------------

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryID lê um id opcional da query string; nil quando ausente.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name)
		return nil, false
	}
	v := uint(id)
	return &v, true
}
