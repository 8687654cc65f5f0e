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

const insightBreakdownsConflict = `
	ON CONFLICT (account_id, breakdown_type, date, dimension_1, COALESCE(dimension_2, ''))
	DO UPDATE SET
		spend = EXCLUDED.spend,
		impressions = EXCLUDED.impressions,
		reach = EXCLUDED.reach,
		clicks = EXCLUDED.clicks,
		link_clicks = EXCLUDED.link_clicks,
		leads = EXCLUDED.leads,
		purchases = EXCLUDED.purchases,
		purchase_value = EXCLUDED.purchase_value,
		schedules = EXCLUDED.schedules,
		synced_at = NOW()
`

//go:generate mockgen -source=insight_breakdown.go -destination=mocks/insight_breakdown.go -package=mocks
type InsightBreakdownRepository interface {
	Upsert(ctx context.Context, breakdowns []domain.InsightBreakdown) (int, error)
}

type insightBreakdownRepository struct {
	conn postgres.Queryer
}

func NewInsightBreakdownRepository(conn postgres.Queryer) InsightBreakdownRepository {
	return &insightBreakdownRepository{
		conn: conn,
	}
}

func (r *insightBreakdownRepository) Upsert(ctx context.Context, breakdowns []domain.InsightBreakdown) (int, error) {
	breakdowns = dedupe(breakdowns, domain.InsightBreakdown.NaturalKey)
	written := 0

	for batch := range slices.Chunk(breakdowns, upsertChunkSize) {
		query := squirrel.StatementBuilder.
			Insert("insight_breakdowns").
			Columns(
				"account_id", "breakdown_type", "date", "dimension_1", "dimension_2",
				"spend", "impressions", "reach", "clicks", "link_clicks",
				"leads", "purchases", "purchase_value", "schedules",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, b := range batch {
			query = query.Values(
				b.AccountID, b.BreakdownType, b.Date.Format(time.DateOnly), b.Dimension1, b.Dimension2,
				b.Spend, b.Impressions, b.Reach, b.Clicks, b.LinkClicks,
				b.Leads, b.Purchases, b.PurchaseValue, b.Schedules,
			)
		}

		sqlQuery, args, err := query.Suffix(insightBreakdownsConflict).ToSql()
		if err != nil {
			return written, fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
			return written, fmt.Errorf("erro ao gravar breakdowns: %w", execError(err))
		}
		written += len(batch)
	}

	return written, nil
}
