package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

type execCall struct {
	query string
	args  []interface{}
}

// recordingQueryer guarda os comandos enviados sem banco nenhum
type recordingQueryer struct {
	calls []execCall
}

func (r *recordingQueryer) Exec(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.calls = append(r.calls, execCall{query: query, args: args})
	return sqlmock.NewResult(0, 1), nil
}

func (r *recordingQueryer) Query(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, fmt.Errorf("não suportado")
}

func (r *recordingQueryer) QueryRow(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestStructureRepository_UpsertIsRepeatable(t *testing.T) {
	campaigns := []domain.Campaign{
		{PlatformID: "c1", Name: "Campanha 1", Status: "ACTIVE", DailyBudget: floatPtr(50)},
		{PlatformID: "c2", Name: "Campanha 2", Status: "PAUSED"},
	}

	recorder := &recordingQueryer{}
	repo := NewStructureRepository(recorder)

	for range 2 {
		n, err := repo.UpsertCampaigns(context.Background(), "acc-1", campaigns)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}

	require.Len(t, recorder.calls, 2)
	assert.Equal(t, recorder.calls[0], recorder.calls[1])
	assert.Contains(t, recorder.calls[0].query, "ON CONFLICT (account_id, platform_id) DO UPDATE SET")
	assert.Len(t, recorder.calls[0].args, 30)
}

func TestStructureRepository_ResolvesParentsByPlatformID(t *testing.T) {
	recorder := &recordingQueryer{}
	repo := NewStructureRepository(recorder)

	_, err := repo.UpsertAdSets(context.Background(), "acc-1", []domain.AdSet{
		{PlatformID: "as1", CampaignPlatformID: "c1", Name: "Conjunto"},
	})
	require.NoError(t, err)

	_, err = repo.UpsertAds(context.Background(), "acc-1", []domain.Ad{
		{PlatformID: "ad1", AdSetPlatformID: "as1", CampaignPlatformID: "c1", Name: "Anúncio"},
		{PlatformID: "ad2", CampaignPlatformID: "c1", Name: "Sem conjunto"},
	})
	require.NoError(t, err)

	require.Len(t, recorder.calls, 2)

	adSetCall := recorder.calls[0]
	assert.Contains(t, adSetCall.query, "(SELECT id FROM campaigns WHERE account_id = $2 AND platform_id = $3)")
	assert.Equal(t, []interface{}{"acc-1", "acc-1", "c1", "as1"}, adSetCall.args[:4])
	assert.Contains(t, adSetCall.query, "campaign_id = COALESCE(EXCLUDED.campaign_id, ad_sets.campaign_id)")

	adCall := recorder.calls[1]
	assert.Contains(t, adCall.query, "(SELECT id FROM ad_sets WHERE account_id = $2 AND platform_id = $3)")
	assert.Contains(t, adCall.query, "(SELECT id FROM campaigns WHERE account_id = $4 AND platform_id = $5)")
	assert.Contains(t, adCall.query, "NULL")
	assert.NotContains(t, strings.SplitN(adCall.query, "ON CONFLICT", 2)[1], "image_url")
}

func TestStructureRepository_UpsertDeduplicatesPlatformID(t *testing.T) {
	recorder := &recordingQueryer{}
	repo := NewStructureRepository(recorder)

	n, err := repo.UpsertCampaigns(context.Background(), "acc-1", []domain.Campaign{
		{PlatformID: "c1", Name: "Nome antigo"},
		{PlatformID: "c2", Name: "Campanha 2"},
		{PlatformID: "c1", Name: "Nome novo"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, recorder.calls, 1)
	assert.Len(t, recorder.calls[0].args, 30)
	assert.Equal(t, []interface{}{"acc-1", "c1", "Nome novo"}, recorder.calls[0].args[:3])
	assert.Equal(t, []interface{}{"acc-1", "c2", "Campanha 2"}, recorder.calls[0].args[15:18])

	// a repetição em lotes diferentes também some antes da divisão
	adSets := make([]domain.AdSet, upsertChunkSize+1)
	for i := range adSets {
		adSets[i] = domain.AdSet{PlatformID: fmt.Sprintf("as-%d", i), CampaignPlatformID: "c1"}
	}
	adSets[upsertChunkSize].PlatformID = "as-0"

	n, err = repo.UpsertAdSets(context.Background(), "acc-1", adSets)
	require.NoError(t, err)
	assert.Equal(t, upsertChunkSize, n)
	assert.Len(t, recorder.calls, 2)

	n, err = repo.UpsertAds(context.Background(), "acc-1", []domain.Ad{
		{PlatformID: "ad1", Name: "Anúncio"},
		{PlatformID: "ad1", Name: "Anúncio"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, recorder.calls, 3)
}

func TestStructureRepository_Chunks(t *testing.T) {
	ads := make([]domain.Ad, 450)
	for i := range ads {
		ads[i] = domain.Ad{PlatformID: fmt.Sprintf("ad-%d", i), Name: "Anúncio"}
	}

	recorder := &recordingQueryer{}
	n, err := NewStructureRepository(recorder).UpsertAds(context.Background(), "acc-1", ads)

	require.NoError(t, err)
	assert.Equal(t, 450, n)
	assert.Len(t, recorder.calls, 3)
}

func TestStructureRepository_UpdateCreative(t *testing.T) {
	tests := []struct {
		name      string
		creative  domain.Creative
		setup     func(mock sqlmock.Sqlmock)
		want      bool
		wantError bool
	}{
		{
			name:     "Criativo vazio não gera comando",
			creative: domain.Creative{AdPlatformID: "ad1"},
			setup:    func(mock sqlmock.Sqlmock) {},
			want:     false,
		},
		{
			name: "Só os campos presentes são gravados",
			creative: domain.Creative{
				AdPlatformID:       "ad1",
				CreativePlatformID: "cr1",
				ImageURL:           strPtr("https://cdn.test/img.jpg"),
				Headline:           strPtr("Título"),
				Body:               strPtr(""),
			},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE ads SET image_url = $1, headline = $2, creative_platform_id = $3 WHERE account_id = $4 AND platform_id = $5")).
					WithArgs("https://cdn.test/img.jpg", "Título", "cr1", "acc-1", "ad1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name:     "Erro do banco inclui o SQLSTATE",
			creative: domain.Creative{AdPlatformID: "ad1", VideoURL: strPtr("https://cdn.test/v.mp4")},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE ads SET video_url").
					WillReturnError(&pq.Error{Code: "57014", Message: "canceling statement due to statement timeout"})
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMock(t)
			tt.setup(mock)

			got, err := NewStructureRepository(conn).UpdateCreative(context.Background(), "acc-1", tt.creative)

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "57014")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStructureRepository_ListAdsMissingCreative(t *testing.T) {
	conn, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT platform_id, COALESCE(creative_platform_id, '') FROM ads WHERE account_id = $1 AND image_url IS NULL ORDER BY updated_time DESC NULLS LAST LIMIT 500")).
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"platform_id", "creative_platform_id"}).
			AddRow("ad1", "cr1").
			AddRow("ad2", ""))

	requests, err := NewStructureRepository(conn).ListAdsMissingCreative(context.Background(), "acc-1", 500)

	require.NoError(t, err)
	assert.Equal(t, []domain.CreativeRequest{
		{AdPlatformID: "ad1", CreativePlatformID: "cr1"},
		{AdPlatformID: "ad2"},
	}, requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}
