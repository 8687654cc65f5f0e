package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/traffic-manager-sync/pkg/apiErrors"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// ReadinessHandler só responde 200 quando o banco está acessível
func ReadinessHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logrus.WithField("error", err.Error()).Warn("Banco de dados indisponível")
			apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Banco de dados indisponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
