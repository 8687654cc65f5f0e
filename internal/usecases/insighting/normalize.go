package insighting

import (
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	actionLandingPageView  = "landing_page_view"
	actionMessagingStarted = "onsite_conversion.messaging_conversation_started_7d"
	actionOutboundClick    = "outbound_click"
	actionVideoView        = "video_view"
)

// Tipos usados só quando a conta não tem tipo de ação principal configurado.
// A ordem é de preferência: o primeiro presente na linha é usado.
var (
	fallbackLeadTypes     = []string{"lead", "onsite_conversion.lead_grouped", "offsite_conversion.fb_pixel_lead"}
	fallbackPurchaseTypes = []string{"purchase", "omni_purchase", "offsite_conversion.fb_pixel_purchase"}
)

// Results são as métricas de resultado derivadas das ações de uma linha
type Results struct {
	Leads         int64
	Purchases     int64
	PurchaseValue float64
	Schedules     int64
}

// DecodeActions lê um array de ações em bruto. Entrada ausente ou inválida vira lista vazia.
func DecodeActions(raw jsoniter.RawMessage) []metadomain.Action {
	if len(raw) == 0 {
		return nil
	}

	var actions []metadomain.Action
	if err := json.Unmarshal(raw, &actions); err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Debug("insights: array de ações inválido, ignorando")
		return nil
	}

	return actions
}

// ParseActionArray indexa as contagens por action_type. Valores não numéricos são ignorados.
func ParseActionArray(actions []metadomain.Action) map[string]float64 {
	out := make(map[string]float64, len(actions))

	for _, action := range actions {
		if action.ActionType == "" {
			continue
		}

		value, ok := action.Value.Float()
		if !ok {
			continue
		}

		out[action.ActionType] = value
	}

	return out
}

// ParseActionValues é ParseActionArray para valores monetários, já arredondados em centavos
func ParseActionValues(actions []metadomain.Action) map[string]float64 {
	out := ParseActionArray(actions)
	for actionType, value := range out {
		out[actionType] = utils.RoundWithTwoDecimalPlace(value)
	}

	return out
}

// VideoMetric extrai a entrada video_view de um array de vídeo
func VideoMetric(actions []metadomain.Action) int64 {
	for _, action := range actions {
		if action.ActionType == actionVideoView {
			return toCount(action.Value.FloatOrZero())
		}
	}

	return 0
}

// DeriveResults aplica a política de resultado da conta.
//
// Com tipo principal configurado, apenas esse tipo é contado, procurado primeiro em
// actions e depois em conversions, e vai para um único destino: agendamentos, compras
// (com valor) ou leads. Nenhum outro tipo entra na conta.
// Sem tipo principal, usa a lista fixa de tipos conhecidos de lead e de compra.
func DeriveResults(row *metadomain.InsightRow, primaryActionType string) Results {
	actions := ParseActionArray(DecodeActions(row.Actions))
	conversions := ParseActionArray(DecodeActions(row.Conversions))
	actionValues := ParseActionValues(DecodeActions(row.ActionValues))
	conversionValues := ParseActionValues(DecodeActions(row.ConversionValues))

	primaryActionType = strings.TrimSpace(primaryActionType)
	if primaryActionType != "" {
		count, ok := lookup(primaryActionType, actions, conversions)
		if !ok {
			return Results{}
		}

		value, _ := lookup(primaryActionType, actionValues, conversionValues)
		return route(primaryActionType, count, value)
	}

	var results Results

	if _, count, ok := firstPresent(fallbackLeadTypes, actions, conversions); ok {
		results.Leads = toCount(count)
	}

	if actionType, count, ok := firstPresent(fallbackPurchaseTypes, actions, conversions); ok {
		value, _ := lookup(actionType, actionValues, conversionValues)
		results.Purchases = toCount(count)
		results.PurchaseValue = value
	}

	return results
}

// route classifica o tipo principal pelo nome
func route(actionType string, count, value float64) Results {
	name := strings.ToLower(actionType)

	switch {
	case strings.Contains(name, "schedule"):
		return Results{Schedules: toCount(count)}
	case strings.Contains(name, "purchase"):
		return Results{Purchases: toCount(count), PurchaseValue: value}
	default:
		return Results{Leads: toCount(count)}
	}
}

func lookup(actionType string, maps ...map[string]float64) (float64, bool) {
	for _, m := range maps {
		if v, ok := m[actionType]; ok {
			return v, true
		}
	}

	return 0, false
}

func firstPresent(types []string, maps ...map[string]float64) (string, float64, bool) {
	for _, actionType := range types {
		if v, ok := lookup(actionType, maps...); ok {
			return actionType, v, true
		}
	}

	return "", 0, false
}

// NormalizeInsight converte uma linha de /insights no registro gravado em ad_insights
func NormalizeInsight(accountID string, level domain.InsightLevel, row *metadomain.InsightRow, primaryActionType string) (domain.Insight, error) {
	date, err := parseDate(row.DateStart)
	if err != nil {
		return domain.Insight{}, err
	}

	actions := ParseActionArray(DecodeActions(row.Actions))
	results := DeriveResults(row, primaryActionType)

	insight := domain.Insight{
		AccountID: accountID,
		Level:     level,
		Date:      date,

		Spend:            utils.RoundWithTwoDecimalPlace(row.Spend.FloatOrZero()),
		Impressions:      toCount(row.Impressions.FloatOrZero()),
		Reach:            toCount(row.Reach.FloatOrZero()),
		Frequency:        row.Frequency.FloatOrZero(),
		Clicks:           toCount(row.Clicks.FloatOrZero()),
		LinkClicks:       toCount(row.InlineLinkClicks.FloatOrZero()),
		OutboundClicks:   toCount(ParseActionArray(DecodeActions(row.OutboundClicks))[actionOutboundClick]),
		LandingPageViews: toCount(actions[actionLandingPageView]),

		Leads:                         results.Leads,
		Purchases:                     results.Purchases,
		PurchaseValue:                 results.PurchaseValue,
		Schedules:                     results.Schedules,
		MessagingConversationsStarted: toCount(actions[actionMessagingStarted]),

		VideoPlays:     VideoMetric(DecodeActions(row.VideoPlayActions)),
		VideoP25:       VideoMetric(DecodeActions(row.VideoP25WatchedActions)),
		VideoP50:       VideoMetric(DecodeActions(row.VideoP50WatchedActions)),
		VideoP75:       VideoMetric(DecodeActions(row.VideoP75WatchedActions)),
		VideoP100:      VideoMetric(DecodeActions(row.VideoP100WatchedActions)),
		VideoThruPlays: VideoMetric(DecodeActions(row.VideoThruPlayActions)),

		ActionsRaw:      rawJSON(row.Actions),
		ActionValuesRaw: rawJSON(row.ActionValues),
		ConversionsRaw:  rawJSON(row.Conversions),
	}

	switch level {
	case domain.InsightLevelCampaign:
		insight.CampaignID = optional(row.CampaignID)
	case domain.InsightLevelAdSet:
		insight.CampaignID = optional(row.CampaignID)
		insight.AdSetID = optional(row.AdSetID)
	case domain.InsightLevelAd:
		insight.CampaignID = optional(row.CampaignID)
		insight.AdSetID = optional(row.AdSetID)
		insight.AdID = optional(row.AdID)
	}

	return insight, nil
}

// NormalizeBreakdown converte uma linha de breakdown. A primeira dimensão é obrigatória.
func NormalizeBreakdown(accountID string, breakdown domain.BreakdownType, row *metadomain.InsightRow, primaryActionType string) (domain.InsightBreakdown, error) {
	date, err := parseDate(row.DateStart)
	if err != nil {
		return domain.InsightBreakdown{}, err
	}

	dimensions := breakdown.Dimensions()
	if len(dimensions) == 0 {
		return domain.InsightBreakdown{}, fmt.Errorf("tipo de breakdown desconhecido: %q", breakdown)
	}

	dimension1 := row.Dimension(dimensions[0])
	if dimension1 == "" {
		return domain.InsightBreakdown{}, fmt.Errorf("linha de breakdown %s sem %s", breakdown, dimensions[0])
	}

	var dimension2 *string
	if len(dimensions) > 1 {
		dimension2 = optional(row.Dimension(dimensions[1]))
	}

	results := DeriveResults(row, primaryActionType)

	return domain.InsightBreakdown{
		AccountID:     accountID,
		BreakdownType: breakdown,
		Date:          date,
		Dimension1:    dimension1,
		Dimension2:    dimension2,

		Spend:         utils.RoundWithTwoDecimalPlace(row.Spend.FloatOrZero()),
		Impressions:   toCount(row.Impressions.FloatOrZero()),
		Reach:         toCount(row.Reach.FloatOrZero()),
		Clicks:        toCount(row.Clicks.FloatOrZero()),
		LinkClicks:    toCount(row.InlineLinkClicks.FloatOrZero()),
		Leads:         results.Leads,
		Purchases:     results.Purchases,
		PurchaseValue: results.PurchaseValue,
		Schedules:     results.Schedules,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date_start: %w", err)
	}

	return date, nil
}

func toCount(v float64) int64 {
	return int64(math.Round(v))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// rawJSON mantém o array original apenas quando é JSON válido
func rawJSON(raw jsoniter.RawMessage) []byte {
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}

	out := make([]byte, len(raw))
	copy(out, raw)

	return out
}
