package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/traffic-manager-sync/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

//go:generate mockgen -source=structure.go -destination=mocks/structure.go -package=mocks
type StructureRepository interface {
	UpsertCampaigns(ctx context.Context, accountID string, campaigns []domain.Campaign) (int, error)
	UpsertAdSets(ctx context.Context, accountID string, adSets []domain.AdSet) (int, error)
	UpsertAds(ctx context.Context, accountID string, ads []domain.Ad) (int, error)
	ListAdsMissingCreative(ctx context.Context, accountID string, limit int) ([]domain.CreativeRequest, error)
	// UpdateCreative grava só os campos presentes; devolve false quando não havia nada a gravar
	UpdateCreative(ctx context.Context, accountID string, creative domain.Creative) (bool, error)
}

type structureRepository struct {
	conn postgres.Queryer
}

func NewStructureRepository(conn postgres.Queryer) StructureRepository {
	return &structureRepository{
		conn: conn,
	}
}

func (r *structureRepository) UpsertCampaigns(ctx context.Context, accountID string, campaigns []domain.Campaign) (int, error) {
	campaigns = dedupe(campaigns, func(item domain.Campaign) string { return item.PlatformID })
	written := 0

	for batch := range slices.Chunk(campaigns, upsertChunkSize) {
		query := squirrel.StatementBuilder.
			Insert("campaigns").
			Columns(
				"account_id", "platform_id", "name", "status", "effective_status", "objective",
				"buying_type", "bid_strategy", "daily_budget", "lifetime_budget", "budget_remaining",
				"start_time", "stop_time", "created_time", "updated_time",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, c := range batch {
			query = query.Values(
				accountID, c.PlatformID, c.Name, nullString(c.Status), nullString(c.EffectiveStatus), nullString(c.Objective),
				nullString(c.BuyingType), nullString(c.BidStrategy), c.DailyBudget, c.LifetimeBudget, c.BudgetRemaining,
				c.StartTime, c.StopTime, c.CreatedTime, c.UpdatedTime,
			)
		}

		query = query.Suffix(`
			ON CONFLICT (account_id, platform_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				objective = EXCLUDED.objective,
				buying_type = EXCLUDED.buying_type,
				bid_strategy = EXCLUDED.bid_strategy,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				budget_remaining = EXCLUDED.budget_remaining,
				start_time = EXCLUDED.start_time,
				stop_time = EXCLUDED.stop_time,
				created_time = EXCLUDED.created_time,
				updated_time = EXCLUDED.updated_time,
				synced_at = NOW()
		`)

		if err := r.exec(ctx, query); err != nil {
			return written, fmt.Errorf("erro ao gravar campanhas: %w", err)
		}
		written += len(batch)
	}

	return written, nil
}

// UpsertAdSets resolve a campanha pai pelo platform_id no momento da escrita.
// Um conjunto cuja campanha ainda não existe fica com campaign_id nulo até a próxima sincronização.
func (r *structureRepository) UpsertAdSets(ctx context.Context, accountID string, adSets []domain.AdSet) (int, error) {
	adSets = dedupe(adSets, func(item domain.AdSet) string { return item.PlatformID })
	written := 0

	for batch := range slices.Chunk(adSets, upsertChunkSize) {
		query := squirrel.StatementBuilder.
			Insert("ad_sets").
			Columns(
				"account_id", "campaign_id", "platform_id", "campaign_platform_id", "name", "status",
				"effective_status", "optimization_goal", "billing_event", "bid_strategy", "bid_amount",
				"daily_budget", "lifetime_budget", "start_time", "end_time", "created_time", "updated_time",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, s := range batch {
			query = query.Values(
				accountID, parentID("campaigns", accountID, s.CampaignPlatformID), s.PlatformID, s.CampaignPlatformID, s.Name, nullString(s.Status),
				nullString(s.EffectiveStatus), nullString(s.OptimizationGoal), nullString(s.BillingEvent), nullString(s.BidStrategy), s.BidAmount,
				s.DailyBudget, s.LifetimeBudget, s.StartTime, s.EndTime, s.CreatedTime, s.UpdatedTime,
			)
		}

		query = query.Suffix(`
			ON CONFLICT (account_id, platform_id) DO UPDATE SET
				campaign_id = COALESCE(EXCLUDED.campaign_id, ad_sets.campaign_id),
				campaign_platform_id = EXCLUDED.campaign_platform_id,
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				optimization_goal = EXCLUDED.optimization_goal,
				billing_event = EXCLUDED.billing_event,
				bid_strategy = EXCLUDED.bid_strategy,
				bid_amount = EXCLUDED.bid_amount,
				daily_budget = EXCLUDED.daily_budget,
				lifetime_budget = EXCLUDED.lifetime_budget,
				start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				created_time = EXCLUDED.created_time,
				updated_time = EXCLUDED.updated_time,
				synced_at = NOW()
		`)

		if err := r.exec(ctx, query); err != nil {
			return written, fmt.Errorf("erro ao gravar conjuntos de anúncios: %w", err)
		}
		written += len(batch)
	}

	return written, nil
}

// UpsertAds resolve conjunto e campanha pais pelo platform_id, como em UpsertAdSets.
// Os campos de criativo não são tocados aqui.
func (r *structureRepository) UpsertAds(ctx context.Context, accountID string, ads []domain.Ad) (int, error) {
	ads = dedupe(ads, func(item domain.Ad) string { return item.PlatformID })
	written := 0

	for batch := range slices.Chunk(ads, upsertChunkSize) {
		query := squirrel.StatementBuilder.
			Insert("ads").
			Columns(
				"account_id", "ad_set_id", "campaign_id", "platform_id", "adset_platform_id", "campaign_platform_id",
				"creative_platform_id", "name", "status", "effective_status", "created_time", "updated_time",
			).
			PlaceholderFormat(squirrel.Dollar)

		for _, ad := range batch {
			query = query.Values(
				accountID, parentID("ad_sets", accountID, ad.AdSetPlatformID), parentID("campaigns", accountID, ad.CampaignPlatformID),
				ad.PlatformID, ad.AdSetPlatformID, ad.CampaignPlatformID,
				nullString(ad.CreativePlatformID), ad.Name, nullString(ad.Status), nullString(ad.EffectiveStatus), ad.CreatedTime, ad.UpdatedTime,
			)
		}

		query = query.Suffix(`
			ON CONFLICT (account_id, platform_id) DO UPDATE SET
				ad_set_id = COALESCE(EXCLUDED.ad_set_id, ads.ad_set_id),
				campaign_id = COALESCE(EXCLUDED.campaign_id, ads.campaign_id),
				adset_platform_id = EXCLUDED.adset_platform_id,
				campaign_platform_id = EXCLUDED.campaign_platform_id,
				creative_platform_id = COALESCE(EXCLUDED.creative_platform_id, ads.creative_platform_id),
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				effective_status = EXCLUDED.effective_status,
				created_time = EXCLUDED.created_time,
				updated_time = EXCLUDED.updated_time,
				synced_at = NOW()
		`)

		if err := r.exec(ctx, query); err != nil {
			return written, fmt.Errorf("erro ao gravar anúncios: %w", err)
		}
		written += len(batch)
	}

	return written, nil
}

func (r *structureRepository) ListAdsMissingCreative(ctx context.Context, accountID string, limit int) ([]domain.CreativeRequest, error) {
	queryBuilder := squirrel.
		Select("platform_id, COALESCE(creative_platform_id, '')").
		From("ads").
		Where(squirrel.Eq{"account_id": accountID, "image_url": nil}).
		OrderBy("updated_time DESC NULLS LAST").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, execError(err)
	}
	defer rows.Close()

	requests := make([]domain.CreativeRequest, 0)
	for rows.Next() {
		var req domain.CreativeRequest
		if err := rows.Scan(&req.AdPlatformID, &req.CreativePlatformID); err != nil {
			return nil, fmt.Errorf("erro ao ler anúncio: %w", err)
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return requests, nil
}

func (r *structureRepository) UpdateCreative(ctx context.Context, accountID string, creative domain.Creative) (bool, error) {
	if creative.AdPlatformID == "" {
		return false, fmt.Errorf("anúncio sem platform_id")
	}

	queryBuilder := squirrel.
		Update("ads").
		Where(squirrel.Eq{"account_id": accountID, "platform_id": creative.AdPlatformID}).
		PlaceholderFormat(squirrel.Dollar)

	fields := 0
	set := func(column string, value *string) {
		if value == nil || *value == "" {
			return
		}
		queryBuilder = queryBuilder.Set(column, *value)
		fields++
	}

	set("image_url", creative.ImageURL)
	set("video_url", creative.VideoURL)
	set("thumbnail_url", creative.ThumbnailURL)
	set("headline", creative.Headline)
	set("body", creative.Body)
	set("call_to_action", creative.CallToAction)

	if fields == 0 {
		return false, nil
	}

	if creative.CreativePlatformID != "" {
		queryBuilder = queryBuilder.Set("creative_platform_id", creative.CreativePlatformID)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return false, execError(err)
	}

	return true, nil
}

func (r *structureRepository) exec(ctx context.Context, query squirrel.InsertBuilder) error {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sqlQuery, args...); err != nil {
		return execError(err)
	}

	return nil
}

// parentID é a sub-consulta que resolve o id interno do pai pela chave natural
func parentID(table, accountID, platformID string) squirrel.Sqlizer {
	if platformID == "" {
		return squirrel.Expr("NULL")
	}

	return squirrel.Expr(
		fmt.Sprintf("(SELECT id FROM %s WHERE account_id = ? AND platform_id = ?)", table),
		accountID, platformID,
	)
}
