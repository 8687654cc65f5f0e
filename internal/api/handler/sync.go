package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-sync/pkg/apiErrors"
	"github.com/vfg2006/traffic-manager-sync/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxTriggerDays limita disparos manuais; períodos maiores devem usar o backfill da linha de comando
const maxTriggerDays = 31

// SyncController é a parte do agendador exposta pela API de operação
//
//go:generate mockgen -source=sync.go -destination=mocks/sync.go -package=mocks
type SyncController interface {
	TriggerManualSync(days int) bool
	GetStatus() map[string]any
}

// GetSyncStatus devolve a última execução gravada e o estado do agendador
func GetSyncStatus(syncRuns repository.SyncRunRepository, organizationID string, controller SyncController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		run, err := syncRuns.GetLatest(r.Context(), organizationID)
		if err != nil {
			err = errors.Wrap(err, "erro ao buscar última execução")
			logger.WithField("error", err.Error()).Error("Erro ao obter status da sincronização")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar última execução", nil)
			return
		}

		response := map[string]any{
			"organization_id": organizationID,
			"last_run":        run,
		}

		if controller != nil {
			response["scheduler"] = controller.GetStatus()
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// TriggerSync dispara uma sincronização em segundo plano. Aceita ?days=N para uma janela diferente da agendada.
func TriggerSync(controller SyncController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if controller == nil {
			apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Serviço de sincronização não disponível", nil)
			return
		}

		days, err := parseDays(r.URL.Query().Get("days"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if !controller.TriggerManualSync(days) {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Já existe uma sincronização em andamento", nil)
			return
		}

		logrus.WithField("days", days).Info("Sincronização manual disparada pela API")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Sincronização iniciada com sucesso",
			"days":    days,
		})
	}
}

func parseDays(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "parâmetro days inválido %q", raw)
	}

	if days < 1 || days > maxTriggerDays {
		return 0, errors.Errorf("parâmetro days deve estar entre 1 e %d", maxTriggerDays)
	}

	return days, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithField("error", err.Error()).Warn("Erro ao escrever resposta")
	}
}
