package meta

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

const (
	insightFields = "account_id,campaign_id,campaign_name,adset_id,adset_name,ad_id,ad_name,date_start,date_stop," +
		"spend,impressions,reach,frequency,clicks,inline_link_clicks,outbound_clicks," +
		"actions,action_values,conversions,conversion_values," +
		"video_play_actions,video_p25_watched_actions,video_p50_watched_actions,video_p75_watched_actions," +
		"video_p100_watched_actions,video_thruplay_watched_actions"

	breakdownFields = "account_id,date_start,date_stop,spend,impressions,clicks,inline_link_clicks," +
		"actions,action_values,conversions,conversion_values"
)

func (s *MetaIntegrator) GetInsights(ctx context.Context, accountID string, level domain.InsightLevel, dr domain.DateRange) ([]metadomain.InsightRow, error) {
	params := s.insightParams(dr)
	params.Add("level", string(level))
	params.Add("fields", insightFields)

	rows, err := metaclient.FetchAll[metadomain.InsightRow](ctx, s.Client, metaclient.BuildURL(s.cfg.Meta.URL, accountNode(accountID)+"/insights", params))
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      level,
		"date_range": dr.String(),
		"rows":       len(rows),
	}).Debug("meta: insights obtidos")

	return rows, nil
}

func (s *MetaIntegrator) GetInsightsByDay(ctx context.Context, accountID string, level domain.InsightLevel, dr domain.DateRange) (domain.BatchResult[metadomain.InsightRow], error) {
	var result domain.BatchResult[metadomain.InsightRow]

	for _, day := range dr.Days() {
		rows, err := s.GetInsights(ctx, accountID, level, domain.SingleDay(day))
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return result, err
			}

			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"level":      level,
				"date":       day.Format(time.DateOnly),
				"error":      err.Error(),
			}).Warn("meta: falha ao buscar insights do dia")
			result.Fail(day.Format(time.DateOnly), err)
			continue
		}

		result.Items = append(result.Items, rows...)
	}

	return result, nil
}

func (s *MetaIntegrator) GetBreakdownInsights(ctx context.Context, accountID string, breakdown domain.BreakdownType, dr domain.DateRange) ([]metadomain.InsightRow, error) {
	dimensions := breakdown.Dimensions()
	if len(dimensions) == 0 {
		return nil, &metaclient.APIError{Kind: metaclient.KindPermanent, Message: "breakdown desconhecido: " + string(breakdown)}
	}

	fields := breakdownFields
	// A API rejeita reach junto com o breakdown por hora
	if breakdown != domain.BreakdownHourly {
		fields += ",reach"
	}

	params := s.insightParams(dr)
	params.Add("level", string(domain.InsightLevelAccount))
	params.Add("fields", fields)
	params.Add("breakdowns", strings.Join(dimensions, ","))

	return metaclient.FetchAll[metadomain.InsightRow](ctx, s.Client, metaclient.BuildURL(s.cfg.Meta.URL, accountNode(accountID)+"/insights", params))
}

func (s *MetaIntegrator) insightParams(dr domain.DateRange) url.Values {
	pageSize := s.cfg.Sync.InsightsPageSize
	if pageSize <= 0 {
		pageSize = 500
	}

	timeRange, _ := json.Marshal(map[string]string{
		"since": dr.Since.Format(time.DateOnly),
		"until": dr.Until.Format(time.DateOnly),
	})

	params := url.Values{}
	params.Add("time_range", string(timeRange))
	params.Add("time_increment", "1")
	params.Add("limit", strconv.Itoa(pageSize))

	return params
}
