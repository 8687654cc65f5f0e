package meta

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

func newTestIntegrator(client metaclient.Client) *MetaIntegrator {
	cfg := &config.Config{}
	cfg.Meta.URL = "https://graph.test/v22.0"
	cfg.Sync.CreativeBatchSize = 2

	integrator := New(cfg, client)
	integrator.now = func() time.Time { return time.Date(2026, 2, 11, 3, 0, 0, 0, time.UTC) }

	return integrator
}

func rawAds(ids ...string) []jsoniter.RawMessage {
	out := make([]jsoniter.RawMessage, 0, len(ids))
	for _, id := range ids {
		out = append(out, jsoniter.RawMessage(fmt.Sprintf(`{"id":"%s","adset_id":"as-%s","campaign_id":"c","creative":{"id":"cr-%s"}}`, id, id, id)))
	}
	return out
}

func urlPath(t *testing.T, rawURL string) string {
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Path
}

func TestMetaIntegrator_GetAds(t *testing.T) {
	tooLarge := &metaclient.APIError{Kind: metaclient.KindPayloadTooLarge, Code: 1, Message: "Please reduce the amount of data"}

	tests := []struct {
		name         string
		campaignIDs  []string
		setup        func(t *testing.T, client *mocks.MockClient)
		wantErr      bool
		wantIDs      []string
		wantFailures []string
	}{
		{
			name:        "Busca em lote funciona",
			campaignIDs: []string{"c1", "c2"},
			setup: func(t *testing.T, client *mocks.MockClient) {
				client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
						assert.Equal(t, "/v22.0/act_123/ads", urlPath(t, rawURL))
						return rawAds("a1", "a2", "a3"), nil
					})
			},
			wantIDs: []string{"a1", "a2", "a3"},
		},
		{
			name:        "Volume excessivo cai para busca por campanha",
			campaignIDs: []string{"c1", "c2", "c3"},
			setup: func(t *testing.T, client *mocks.MockClient) {
				client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
						switch urlPath(t, rawURL) {
						case "/v22.0/act_123/ads":
							return nil, tooLarge
						case "/v22.0/c1/ads":
							return rawAds("a1"), nil
						case "/v22.0/c2/ads":
							return rawAds("a2"), nil
						case "/v22.0/c3/ads":
							return rawAds("a3"), nil
						}
						t.Fatalf("url inesperada: %s", rawURL)
						return nil, nil
					}).Times(4)
			},
			wantIDs: []string{"a1", "a2", "a3"},
		},
		{
			name:        "Falha de uma campanha não interrompe as outras",
			campaignIDs: []string{"c1", "c2"},
			setup: func(t *testing.T, client *mocks.MockClient) {
				client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
						switch urlPath(t, rawURL) {
						case "/v22.0/act_123/ads":
							return nil, tooLarge
						case "/v22.0/c1/ads":
							return nil, &metaclient.APIError{Kind: metaclient.KindPermanent, Message: "campanha inválida"}
						}
						return rawAds("a2"), nil
					}).Times(3)
			},
			wantIDs:      []string{"a2"},
			wantFailures: []string{"c1"},
		},
		{
			name:        "Erro permanente não degrada",
			campaignIDs: []string{"c1"},
			setup: func(t *testing.T, client *mocks.MockClient) {
				client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
					Return(nil, &metaclient.APIError{Kind: metaclient.KindPermanent, Code: 100})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)
			tt.setup(t, client)

			result, err := newTestIntegrator(client).GetAds(context.Background(), "123", tt.campaignIDs)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(result.Items))
			for _, ad := range result.Items {
				ids = append(ids, ad.PlatformID)
				assert.Equal(t, "cr-"+ad.PlatformID, ad.CreativePlatformID)
			}
			assert.Equal(t, tt.wantIDs, ids)

			failed := make([]string, 0, len(result.Failures))
			for _, f := range result.Failures {
				failed = append(failed, f.Item)
			}
			assert.ElementsMatch(t, tt.wantFailures, failed)
		})
	}
}

func TestMetaIntegrator_GetCreatives_VideoFailureKeepsOtherFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().FetchJSON(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rawURL string) ([]byte, error) {
			id := path.Base(urlPath(t, rawURL))
			switch {
			case id == "video-3":
				return nil, &metaclient.APIError{Kind: metaclient.KindPermanent, Message: "vídeo indisponível"}
			case strings.HasPrefix(id, "video-"):
				return []byte(fmt.Sprintf(`{"id":"%s","source":"https://cdn.test/%s.mp4","picture":"https://cdn.test/%s.jpg"}`, id, id, id)), nil
			default:
				n := id[len(id)-1:]
				return []byte(fmt.Sprintf(`{
					"id":"%s",
					"title":"Título %s",
					"body":"Texto %s",
					"thumbnail_url":"https://cdn.test/thumb-%s.jpg",
					"object_story_spec":{"video_data":{"video_id":"video-%s","image_url":"https://cdn.test/img-%s.jpg"}}
				}`, id, n, n, n, n, n)), nil
			}
		}).Times(10)

	requests := make([]domain.CreativeRequest, 0, 5)
	for i := 1; i <= 5; i++ {
		requests = append(requests, domain.CreativeRequest{
			AdPlatformID:       fmt.Sprintf("ad-%d", i),
			CreativePlatformID: fmt.Sprintf("cr-%d", i),
		})
	}

	result := newTestIntegrator(client).GetCreatives(context.Background(), requests)

	require.Len(t, result.Items, 5)
	for i, creative := range result.Items {
		assert.Equal(t, fmt.Sprintf("ad-%d", i+1), creative.AdPlatformID)
		require.NotNil(t, creative.ImageURL)
		require.NotNil(t, creative.Headline)
		require.NotNil(t, creative.Body)
	}

	third := result.Items[2]
	assert.Nil(t, third.VideoURL)
	assert.Equal(t, "https://cdn.test/img-3.jpg", *third.ImageURL)
	assert.Equal(t, "Título 3", *third.Headline)

	require.NotNil(t, result.Items[0].VideoURL)
	assert.Equal(t, "https://cdn.test/video-1.mp4", *result.Items[0].VideoURL)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ad-3", result.Failures[0].Item)
}

func TestMetaIntegrator_GetCreatives_FailedAdEmitsEmptyCreative(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().FetchJSON(gomock.Any(), gomock.Any()).
		Return(nil, &metaclient.APIError{Kind: metaclient.KindPermanent, Message: "sem permissão"})

	result := newTestIntegrator(client).GetCreatives(context.Background(), []domain.CreativeRequest{
		{AdPlatformID: "ad-1", CreativePlatformID: "cr-1"},
	})

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].IsEmpty())
	require.Len(t, result.Failures, 1)
}

func TestMetaIntegrator_GetInsightsByDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
			u, err := url.Parse(rawURL)
			require.NoError(t, err)

			q := u.Query()
			assert.Equal(t, "1", q.Get("time_increment"))
			assert.Equal(t, "ad", q.Get("level"))

			var tr map[string]string
			require.NoError(t, json.Unmarshal([]byte(q.Get("time_range")), &tr))
			assert.Equal(t, tr["since"], tr["until"])

			if tr["since"] == "2026-02-02" {
				return nil, &metaclient.APIError{Kind: metaclient.KindUnknown, Code: 1}
			}
			return []jsoniter.RawMessage{jsoniter.RawMessage(fmt.Sprintf(`{"date_start":"%s","spend":"1.00"}`, tr["since"]))}, nil
		}).Times(3)

	dr := domain.DateRange{
		Since: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC),
	}

	result, err := newTestIntegrator(client).GetInsightsByDay(context.Background(), "123", domain.InsightLevelAd, dr)

	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "2026-02-01", result.Items[0].DateStart)
	assert.Equal(t, "2026-02-03", result.Items[1].DateStart)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "2026-02-02", result.Failures[0].Item)
}

func TestMetaIntegrator_GetBreakdownInsights(t *testing.T) {
	tests := []struct {
		name           string
		breakdown      domain.BreakdownType
		wantBreakdowns string
		wantReach      bool
	}{
		{name: "Idade e gênero", breakdown: domain.BreakdownAgeGender, wantBreakdowns: "age,gender", wantReach: true},
		{name: "Posicionamento", breakdown: domain.BreakdownPlacement, wantBreakdowns: "publisher_platform,platform_position", wantReach: true},
		{name: "Por hora sem reach", breakdown: domain.BreakdownHourly, wantBreakdowns: "hourly_stats_aggregated_by_advertiser_time_zone", wantReach: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mocks.NewMockClient(ctrl)

			client.EXPECT().FetchAllPages(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
					u, err := url.Parse(rawURL)
					require.NoError(t, err)

					assert.Equal(t, tt.wantBreakdowns, u.Query().Get("breakdowns"))
					assert.Equal(t, tt.wantReach, containsField(u.Query().Get("fields"), "reach"))
					return nil, nil
				})

			_, err := newTestIntegrator(client).GetBreakdownInsights(context.Background(), "123", tt.breakdown, domain.SingleDay(time.Now()))
			assert.NoError(t, err)
		})
	}
}

func TestMetaIntegrator_GetBreakdownInsights_UnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	_, err := newTestIntegrator(client).GetBreakdownInsights(context.Background(), "123", domain.BreakdownType("country"), domain.SingleDay(time.Now()))

	var apiErr *metaclient.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func containsField(fields, field string) bool {
	return slices.Contains(strings.Split(fields, ","), field)
}
