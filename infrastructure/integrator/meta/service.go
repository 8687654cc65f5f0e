package meta

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/internal/config"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	campaignFields = "id,name,status,effective_status,objective,buying_type,bid_strategy,daily_budget,lifetime_budget,budget_remaining,start_time,stop_time,created_time,updated_time"
	adSetFields    = "id,campaign_id,name,status,effective_status,optimization_goal,billing_event,bid_strategy,bid_amount,daily_budget,lifetime_budget,start_time,end_time,created_time,updated_time"
	adFields       = "id,adset_id,campaign_id,name,status,effective_status,creative{id},created_time,updated_time"
)

//go:generate mockgen -source=service.go -destination=mocks/integrator.go -package=mocks
type Integrator interface {
	GetCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error)
	GetAdSets(ctx context.Context, accountID string) ([]domain.AdSet, error)
	// GetAds busca os anúncios da conta. Se a chamada em lote falhar e campaignIDs
	// for informado, busca campanha por campanha.
	GetAds(ctx context.Context, accountID string, campaignIDs []string) (domain.BatchResult[domain.Ad], error)
	GetCreatives(ctx context.Context, requests []domain.CreativeRequest) domain.BatchResult[domain.Creative]
	GetInsights(ctx context.Context, accountID string, level domain.InsightLevel, dr domain.DateRange) ([]metadomain.InsightRow, error)
	// GetInsightsByDay busca um dia por vez e segue adiante quando um dia falha
	GetInsightsByDay(ctx context.Context, accountID string, level domain.InsightLevel, dr domain.DateRange) (domain.BatchResult[metadomain.InsightRow], error)
	GetBreakdownInsights(ctx context.Context, accountID string, breakdown domain.BreakdownType, dr domain.DateRange) ([]metadomain.InsightRow, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *MetaIntegrator) GetCampaigns(ctx context.Context, accountID string) ([]domain.Campaign, error) {
	campaigns, err := metaclient.FetchAll[metadomain.Campaign](ctx, s.Client, s.structureURL(accountNode(accountID), "campaigns", campaignFields))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: falha ao buscar campanhas")
		return nil, err
	}

	result := make([]domain.Campaign, 0, len(campaigns))
	for i := range campaigns {
		result = append(result, FactoryCampaign(&campaigns[i]))
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"total":      len(result),
	}).Debug("meta: campanhas obtidas")

	return result, nil
}

func (s *MetaIntegrator) GetAdSets(ctx context.Context, accountID string) ([]domain.AdSet, error) {
	adSets, err := metaclient.FetchAll[metadomain.AdSet](ctx, s.Client, s.structureURL(accountNode(accountID), "adsets", adSetFields))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: falha ao buscar conjuntos de anúncios")
		return nil, err
	}

	result := make([]domain.AdSet, 0, len(adSets))
	for i := range adSets {
		result = append(result, FactoryAdSet(&adSets[i]))
	}

	return result, nil
}

func (s *MetaIntegrator) GetAds(ctx context.Context, accountID string, campaignIDs []string) (domain.BatchResult[domain.Ad], error) {
	var result domain.BatchResult[domain.Ad]

	ads, err := metaclient.FetchAll[metadomain.Ad](ctx, s.Client, s.structureURL(accountNode(accountID), "ads", adFields))
	if err == nil {
		result.Items = factoryAds(ads)
		return result, nil
	}

	if len(campaignIDs) == 0 || !metaclient.IsDegradable(err) {
		return result, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(campaignIDs),
		"kind":       metaclient.KindOf(err),
	}).Warn("meta: busca de anúncios em lote falhou, buscando por campanha")

	for _, campaignID := range campaignIDs {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		ads, err := metaclient.FetchAll[metadomain.Ad](ctx, s.Client, s.structureURL(campaignID, "ads", adFields))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id":  accountID,
				"campaign_id": campaignID,
				"error":       err.Error(),
			}).Warn("meta: falha ao buscar anúncios da campanha")
			result.Fail(campaignID, err)
			continue
		}

		result.Items = append(result.Items, factoryAds(ads)...)
	}

	return result, nil
}

// structureURL monta a listagem de estrutura limitada aos itens criados na janela de lookback
func (s *MetaIntegrator) structureURL(node, edge, fields string) string {
	months := s.cfg.Sync.StructureLookbackMonths
	if months <= 0 {
		months = 18
	}

	pageSize := s.cfg.Sync.StructurePageSize
	if pageSize <= 0 {
		pageSize = 200
	}

	since := s.now().AddDate(0, -months, 0).Unix()
	filtering := fmt.Sprintf(`[{"field":"created_time","operator":"GREATER_THAN","value":%d}]`, since)

	params := url.Values{}
	params.Add("fields", fields)
	params.Add("filtering", filtering)
	params.Add("limit", strconv.Itoa(pageSize))

	return metaclient.BuildURL(s.cfg.Meta.URL, fmt.Sprintf("%s/%s", node, edge), params)
}

// accountNode prefixa o id da conta com act_, como a Graph API exige
func accountNode(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}

	return "act_" + accountID
}
