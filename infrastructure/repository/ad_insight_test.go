package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

func insightOn(day int, spend float64) domain.Insight {
	return domain.Insight{
		AccountID:  "acc-1",
		Level:      domain.InsightLevelCampaign,
		CampaignID: strPtr("c1"),
		Date:       time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
		Spend:      spend,
		ActionsRaw: []byte(`[{"action_type":"lead","value":"1"}]`),
	}
}

func TestAdInsightRepository_Upsert(t *testing.T) {
	tests := []struct {
		name      string
		insights  []domain.Insight
		wantCalls int
		wantRows  int
		validate  func(t *testing.T, calls []execCall)
	}{
		{
			name:      "Conflito pela chave natural com nulos tratados como iguais",
			insights:  []domain.Insight{insightOn(1, 10)},
			wantCalls: 1,
			wantRows:  1,
			validate: func(t *testing.T, calls []execCall) {
				assert.Contains(t, calls[0].query, "ON CONFLICT (account_id, level, COALESCE(campaign_platform_id, ''), COALESCE(adset_platform_id, ''), COALESCE(ad_platform_id, ''), date)")
				assert.Contains(t, calls[0].query, "spend = EXCLUDED.spend")
				assert.Equal(t, "2026-02-01", calls[0].args[5])
				assert.Equal(t, `[{"action_type":"lead","value":"1"}]`, calls[0].args[25])
				assert.Nil(t, calls[0].args[27])
			},
		},
		{
			name:      "Mesma chave duas vezes mantém o valor mais recente",
			insights:  []domain.Insight{insightOn(1, 10), insightOn(2, 20), insightOn(1, 15)},
			wantCalls: 1,
			wantRows:  2,
			validate: func(t *testing.T, calls []execCall) {
				assert.Len(t, calls[0].args, 2*28)
				assert.Equal(t, 15.0, calls[0].args[6])
				assert.Equal(t, 20.0, calls[0].args[28+6])
			},
		},
		{
			name:      "Lista vazia não gera comando",
			insights:  nil,
			wantCalls: 0,
			wantRows:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &recordingQueryer{}

			n, err := NewAdInsightRepository(recorder).Upsert(context.Background(), tt.insights)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, n)
			require.Len(t, recorder.calls, tt.wantCalls)
			if tt.validate != nil {
				tt.validate(t, recorder.calls)
			}
		})
	}
}

func TestInsightBreakdownRepository_Upsert(t *testing.T) {
	female := "female"
	rows := []domain.InsightBreakdown{
		{AccountID: "acc-1", BreakdownType: domain.BreakdownAgeGender, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Dimension1: "25-34", Dimension2: &female, Spend: 5},
		{AccountID: "acc-1", BreakdownType: domain.BreakdownAgeGender, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Dimension1: "25-34", Dimension2: &female, Spend: 7},
		{AccountID: "acc-1", BreakdownType: domain.BreakdownDevice, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Dimension1: "iphone"},
	}

	recorder := &recordingQueryer{}
	n, err := NewInsightBreakdownRepository(recorder).Upsert(context.Background(), rows)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, recorder.calls, 1)
	assert.Contains(t, recorder.calls[0].query, "ON CONFLICT (account_id, breakdown_type, date, dimension_1, COALESCE(dimension_2, ''))")
	assert.Equal(t, 7.0, recorder.calls[0].args[5])
}
