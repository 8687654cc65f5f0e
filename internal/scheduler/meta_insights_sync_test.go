package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/scheduler"
	"github.com/vfg2006/traffic-manager-sync/internal/scheduler/mocks"
)

func newConfig(enabled bool, cron string) *config.Config {
	cfg := &config.Config{}
	cfg.Sync.Enabled = enabled
	cfg.Sync.CronSchedule = cron
	cfg.Sync.LookbackDays = 3
	return cfg
}

func TestMetaInsightSyncService_TriggerManualSync(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		wantReq scheduler.RunRequest
	}{
		{
			name:    "Sem dias usa a janela do agendamento",
			days:    0,
			wantReq: scheduler.RunRequest{Mode: domain.SyncTypeScheduled, Days: 3},
		},
		{
			name:    "Com dias informados",
			days:    7,
			wantReq: scheduler.RunRequest{Mode: domain.SyncTypeDays, Days: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := mocks.NewMockRunner(ctrl)
			runner.EXPECT().Run(gomock.Any(), tt.wantReq).
				Return(&domain.SyncRun{ID: "run-1", Status: domain.SyncRunStatusSuccess}, nil)

			service := scheduler.NewMetaInsightSyncService(runner, newConfig(false, ""))

			assert.True(t, service.TriggerManualSync(tt.days))
			service.Wait()

			status := service.GetStatus()
			assert.Equal(t, "run-1", status["last_run_id"])
			assert.Equal(t, domain.SyncRunStatusSuccess, status["last_run_status"])
			assert.Equal(t, false, status["sync_running"])
			assert.NotContains(t, status, "last_error")
		})
	}
}

func TestMetaInsightSyncService_IgnoraDisparoConcorrente(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)

	release := make(chan struct{})
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, scheduler.RunRequest) (*domain.SyncRun, error) {
			<-release
			return &domain.SyncRun{ID: "run-1"}, nil
		}).Times(1)

	service := scheduler.NewMetaInsightSyncService(runner, newConfig(false, ""))

	require.True(t, service.TriggerManualSync(0))
	require.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.False(t, service.TriggerManualSync(0))

	close(release)
	service.Wait()
}

func TestMetaInsightSyncService_RegistraErroDoRunner(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.New("erro ao listar contas"))

	service := scheduler.NewMetaInsightSyncService(runner, newConfig(false, ""))

	assert.True(t, service.TriggerManualSync(0))
	service.Wait()

	status := service.GetStatus()
	assert.Equal(t, "erro ao listar contas", status["last_error"])
	assert.NotContains(t, status, "last_run_id")
}

func TestMetaInsightSyncService_Start(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		cron    string
		wantErr bool
	}{
		{name: "Desabilitado não agenda", enabled: false, cron: "expressão inválida"},
		{name: "Cron válido", enabled: true, cron: "0 3 * * *"},
		{name: "Cron inválido", enabled: true, cron: "expressão inválida", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := scheduler.NewMetaInsightSyncService(mocks.NewMockRunner(ctrl), newConfig(tt.enabled, tt.cron))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := service.Start(ctx)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.enabled, service.GetStatus()["sync_enabled"])
		})
	}
}
