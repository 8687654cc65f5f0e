package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken = "AUTH_006" // Token inválido

	// Erros de validação (2000-2999)
	ErrInvalidRequest   = "VAL_001" // Requisição inválida
	ErrInvalidFormat    = "VAL_003" // Formato de dados inválido
	ErrNotFound         = "VAL_004" // Rota não encontrada
	ErrMethodNotAllowed = "VAL_005" // Método não suportado pela rota

	// Erros de sincronização (3000-3999)
	ErrSyncInProgress = "SYNC_001" // Já existe uma sincronização rodando

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrUnavailable       = "SRV_004" // Serviço indisponível
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:      http.StatusUnauthorized,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrInvalidFormat:     http.StatusBadRequest,
	ErrNotFound:          http.StatusNotFound,
	ErrMethodNotAllowed:  http.StatusMethodNotAllowed,
	ErrSyncInProgress:    http.StatusConflict,
	ErrInternalServer:    http.StatusInternalServerError,
	ErrDatabaseOperation: http.StatusInternalServerError,
	ErrUnavailable:       http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}

	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))

	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		logrus.WithField("error", err.Error()).Warn("Erro ao escrever resposta de erro")
	}
}
