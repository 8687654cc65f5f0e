package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vfg2006/traffic-manager-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-manager-sync/internal/api/handler/mocks"
	"github.com/vfg2006/traffic-manager-sync/internal/api/handler/router"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/pkg/apiErrors"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetSyncStatus(t *testing.T) {
	tests := []struct {
		name       string
		run        *domain.SyncRun
		err        error
		wantStatus int
		wantRunID  any
	}{
		{
			name:       "Com execução gravada",
			run:        &domain.SyncRun{ID: "run-1", Status: domain.SyncRunStatusPartial},
			wantStatus: http.StatusOK,
			wantRunID:  "run-1",
		},
		{
			name:       "Sem execuções",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Erro de banco",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			syncRuns := repomocks.NewMockSyncRunRepository(ctrl)
			controller := mocks.NewMockSyncController(ctrl)

			syncRuns.EXPECT().GetLatest(gomock.Any(), "org-1").Return(tt.run, tt.err)
			if tt.err == nil {
				controller.EXPECT().GetStatus().Return(map[string]any{"sync_running": false})
			}

			rec := httptest.NewRecorder()
			GetSyncStatus(syncRuns, "org-1", controller).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decodeBody(t, rec)
			if tt.err != nil {
				assert.Equal(t, apiErrors.ErrDatabaseOperation, body["code"])
				return
			}

			assert.Equal(t, "org-1", body["organization_id"])
			assert.Contains(t, body, "scheduler")
			if tt.wantRunID == nil {
				assert.Nil(t, body["last_run"])
				return
			}

			lastRun, ok := body["last_run"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantRunID, lastRun["id"])
			assert.Equal(t, "partial", lastRun["status"])
		})
	}
}

func TestTriggerSync(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(c *mocks.MockSyncController)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "Dispara com a janela agendada",
			setup:      func(c *mocks.MockSyncController) { c.EXPECT().TriggerManualSync(0).Return(true) },
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "Dispara com dias informados",
			query:      "?days=7",
			setup:      func(c *mocks.MockSyncController) { c.EXPECT().TriggerManualSync(7).Return(true) },
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "Sincronização em andamento",
			setup:      func(c *mocks.MockSyncController) { c.EXPECT().TriggerManualSync(0).Return(false) },
			wantStatus: http.StatusConflict,
			wantCode:   apiErrors.ErrSyncInProgress,
		},
		{
			name:       "Dias não numérico",
			query:      "?days=sete",
			setup:      func(*mocks.MockSyncController) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "Dias acima do limite",
			query:      "?days=90",
			setup:      func(*mocks.MockSyncController) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			controller := mocks.NewMockSyncController(ctrl)
			tt.setup(controller)

			rec := httptest.NewRecorder()
			TriggerSync(controller).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/trigger"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
			}
		})
	}
}

func TestTriggerSync_SemAgendador(t *testing.T) {
	rec := httptest.NewRecorder()
	TriggerSync(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sync/trigger", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	controller := mocks.NewMockSyncController(ctrl)
	controller.EXPECT().TriggerManualSync(0).Return(true)

	rt := router.New(
		router.WithRoutes(Healthcheck(fakePinger{err: errors.New("down")})...),
		router.WithRoutes(Sync(repomocks.NewMockSyncRunRepository(ctrl), "org-1", controller, "segredo")...),
		router.WithRoutes(Metrics()...),
	)

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
		wantCode   string
	}{
		{name: "Liveness", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Readiness com banco fora", method: http.MethodGet, path: "/readiness", wantStatus: http.StatusServiceUnavailable},
		{name: "Métricas", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "Trigger sem token", method: http.MethodPost, path: "/v1/sync/trigger", wantStatus: http.StatusUnauthorized},
		{name: "Trigger com token errado", method: http.MethodPost, path: "/v1/sync/trigger", auth: "Bearer outro", wantStatus: http.StatusUnauthorized},
		{name: "Trigger com token", method: http.MethodPost, path: "/v1/sync/trigger", auth: "Bearer segredo", wantStatus: http.StatusAccepted},
		{name: "Método errado", method: http.MethodGet, path: "/v1/sync/trigger", wantStatus: http.StatusMethodNotAllowed, wantCode: apiErrors.ErrMethodNotAllowed},
		{name: "Rota inexistente", method: http.MethodGet, path: "/v1/users", wantStatus: http.StatusNotFound, wantCode: apiErrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(""))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeBody(t, rec)["code"])
			}
		})
	}
}
