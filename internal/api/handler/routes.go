package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-sync/internal/api/handler/router"
	"github.com/vfg2006/traffic-manager-sync/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/readiness",
			Method:  http.MethodGet,
			Handler: ReadinessHandler(db),
		},
	}
}

func Sync(syncRuns repository.SyncRunRepository, organizationID string, controller SyncController, token string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync/status",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(syncRuns, organizationID, controller),
		},
		{
			Path:        "/v1/sync/trigger",
			Method:      http.MethodPost,
			Handler:     TriggerSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.TokenAuth(token)},
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}
