package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

// O alvo do ON CONFLICT precisa repetir as expressões do índice ad_insights_natural_key
const adInsightsConflict = `
	ON CONFLICT (account_id, level, COALESCE(campaign_platform_id, ''), COALESCE(adset_platform_id, ''), COALESCE(ad_platform_id, ''), date)
	DO UPDATE SET
		spend = EXCLUDED.spend,
		impressions = EXCLUDED.impressions,
		reach = EXCLUDED.reach,
		frequency = EXCLUDED.frequency,
		clicks = EXCLUDED.clicks,
		link_clicks = EXCLUDED.link_clicks,
		outbound_clicks = EXCLUDED.outbound_clicks,
		landing_page_views = EXCLUDED.landing_page_views,
		leads = EXCLUDED.leads,
		purchases = EXCLUDED.purchases,
		purchase_value = EXCLUDED.purchase_value,
		schedules = EXCLUDED.schedules,
		messaging_conversations_started = EXCLUDED.messaging_conversations_started,
		video_plays = EXCLUDED.video_plays,
		video_p25 = EXCLUDED.video_p25,
		video_p50 = EXCLUDED.video_p50,
		video_p75 = EXCLUDED.video_p75,
		video_p100 = EXCLUDED.video_p100,
		video_thruplays = EXCLUDED.video_thruplays,
		actions = EXCLUDED.actions,
		action_values = EXCLUDED.action_values,
		conversions = EXCLUDED.conversions,
		synced_at = NOW()
`

//go:generate mockgen -source=ad_insight.go -destination=mocks/ad_insight.go -package=mocks
type AdInsightRepository interface {
	// Upsert grava as linhas pela chave natural; reenviar o mesmo intervalo atualiza em vez de duplicar
	Upsert(ctx context.Context, insights []domain.Insight) (int, error)
}

type adInsightRepository struct {
	conn postgres.Queryer
}

func NewAdInsightRepository(conn postgres.Queryer) AdInsightRepository {
	return &adInsightRepository{
		conn: conn,
	}
}

func (r *adInsightRepository) Upsert(ctx context.Context, insights []domain.Insight) (int, error) {
	// Postgres rejeita o mesmo alvo duas vezes no mesmo INSERT ... ON CONFLICT
	insights = dedupe(insights, domain.Insight.NaturalKey)
	written := 0

	for batch := range slices.Chunk(insights, upsertChunkSize) {
		query := squirrel.StatementBuilder.
			Insert("ad_insights").
			Columns(
				"account_id", "level", "campaign_platform_id", "adset_platform_id", "ad_platform_id", "date",
				"spend", "impressions", "reach", "frequency", "clicks", "link_clicks", "outbound_clicks", "landing_page_views",
				"leads", "purchases", "purchase_value", "schedules", "messaging_conversations_started",
				"video_plays", "video_p25", "video_p50", "video_p75", "video_p100", "video_thruplays",
				"actions", "action_values", "conversions",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, i := range batch {
			query = query.Values(
				i.AccountID, i.Level, i.CampaignID, i.AdSetID, i.AdID, i.Date.Format(time.DateOnly),
				i.Spend, i.Impressions, i.Reach, i.Frequency, i.Clicks, i.LinkClicks, i.OutboundClicks, i.LandingPageViews,
				i.Leads, i.Purchases, i.PurchaseValue, i.Schedules, i.MessagingConversationsStarted,
				i.VideoPlays, i.VideoP25, i.VideoP50, i.VideoP75, i.VideoP100, i.VideoThruPlays,
				jsonbArg(i.ActionsRaw), jsonbArg(i.ActionValuesRaw), jsonbArg(i.ConversionsRaw),
			)
		}

		sqlQuery, args, err := query.Suffix(adInsightsConflict).ToSql()
		if err != nil {
			return written, fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
			return written, fmt.Errorf("erro ao gravar insights: %w", execError(err))
		}
		written += len(batch)
	}

	return written, nil
}

// dedupe mantém a ordem da primeira ocorrência e o valor da última
func dedupe[T any](items []T, key func(T) string) []T {
	index := make(map[string]int, len(items))
	out := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if pos, ok := index[k]; ok {
			out[pos] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}

	return out
}
