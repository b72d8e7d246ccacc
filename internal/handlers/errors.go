package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ======================================================
// BUSINESS ERROR → HTTP
// ======================================================

type errorInfo struct {
	status  int
	message string
}

var businessErrors = map[string]errorInfo{
	"missing_date_or_time": {http.StatusBadRequest, "Informe data e horário."},
	"invalid_date":         {http.StatusBadRequest, "Data inválida."},
	"date_in_past":         {http.StatusBadRequest, "Não é possível agendar em data passada."},
	"invalid_time":         {http.StatusBadRequest, "Horário inválido."},
	"invalid_status":       {http.StatusBadRequest, "Status inválido."},
	"invalid_state":        {http.StatusBadRequest, "O agendamento não pode mudar para este status."},

	"barber_not_found":      {http.StatusNotFound, "Barbeiro não encontrado."},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},

	"slot_unavailable":       {http.StatusConflict, "Horário indisponível."},
	"slot_already_confirmed": {http.StatusConflict, "Já existe um agendamento confirmado neste horário."},

	"forbidden": {http.StatusForbidden, "Sem permissão para esta ação."},
}

// writeError converte erros de caso de uso na resposta HTTP. Qualquer erro
// fora da tabela vira 500 com o código informado.
func writeError(c *gin.Context, err error, internalCode string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if info, known := businessErrors[code]; known {
			httperr.Write(c, info.status, code, info.message)
			return
		}
	}

	_ = c.Error(err)
	httperr.Internal(c, internalCode, "Erro interno. Tente novamente.")
}

func bindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "Dados inválidos.",
		"details":    err.Error(),
	})
}
