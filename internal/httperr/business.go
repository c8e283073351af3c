package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Code identifica um erro de negócio no campo error_code da resposta.
type Code string

const (
	CodeAppointmentNotFound Code = "appointment_not_found"
	CodeInvalidStatus       Code = "invalid_status"
	CodeInvalidDuration     Code = "invalid_duration"
	CodeInvalidDate         Code = "invalid_date"
	CodeDateRequired        Code = "date_required"
	CodeMissingFields       Code = "missing_fields"
)

var codeMessages = map[Code]string{
	CodeAppointmentNotFound: "Agendamento não encontrado.",
	CodeInvalidStatus:       "Status deve ser um de: PENDING, CONFIRMED, CANCELLED, COMPLETED, NO_SHOW.",
	CodeInvalidDuration:     "Duração do serviço inválida.",
	CodeInvalidDate:         "Data inválida (use AAAA-MM-DD).",
	CodeDateRequired:        "Data é obrigatória.",
	CodeMissingFields:       "Campos obrigatórios ausentes.",
}

type BusinessError struct {
	Code Code
}

func (e BusinessError) Error() string {
	return string(e.Code)
}

// Message devolve o texto para o cliente; códigos sem texto usam o próprio código.
func (e BusinessError) Message() string {
	if msg, ok := codeMessages[e.Code]; ok {
		return msg
	}
	return string(e.Code)
}

func (e BusinessError) Status() int {
	if e.Code == CodeAppointmentNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func ErrBusiness(code Code) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code Code) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// WriteBusiness responde com o status e a mensagem do código.
func WriteBusiness(c *gin.Context, e BusinessError) {
	Write(c, e.Status(), string(e.Code), e.Message())
}
