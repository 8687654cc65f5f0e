package domain

import (
	"fmt"
	"strings"
	"time"
)

type InsightLevel string

const (
	InsightLevelAccount  InsightLevel = "account"
	InsightLevelCampaign InsightLevel = "campaign"
	InsightLevelAdSet    InsightLevel = "adset"
	InsightLevelAd       InsightLevel = "ad"
)

// DefaultInsightLevels são os níveis sincronizados quando nada é configurado
var DefaultInsightLevels = []InsightLevel{InsightLevelAccount, InsightLevelCampaign, InsightLevelAd}

func ParseInsightLevel(s string) (InsightLevel, error) {
	switch InsightLevel(s) {
	case InsightLevelAccount, InsightLevelCampaign, InsightLevelAdSet, InsightLevelAd:
		return InsightLevel(s), nil
	case "ad_set":
		return InsightLevelAdSet, nil
	}

	return "", fmt.Errorf("nível de insight desconhecido: %q", s)
}

// ParseInsightLevels converte uma lista vinda de configuração ou da linha de comando.
// Entradas vazias são ignoradas.
func ParseInsightLevels(values []string) ([]InsightLevel, error) {
	levels := make([]InsightLevel, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		level, err := ParseInsightLevel(v)
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}

	return levels, nil
}

// Insight é uma linha diária de métricas para um nível da hierarquia.
// A chave natural é (AccountID, Level, CampaignID, AdSetID, AdID, Date) com nulos tratados como iguais.
type Insight struct {
	AccountID  string       `json:"account_id"`
	Level      InsightLevel `json:"level"`
	CampaignID *string      `json:"campaign_id"`
	AdSetID    *string      `json:"adset_id"`
	AdID       *string      `json:"ad_id"`
	Date       time.Time    `json:"date"`

	Spend            float64 `json:"spend"`
	Impressions      int64   `json:"impressions"`
	Reach            int64   `json:"reach"`
	Frequency        float64 `json:"frequency"`
	Clicks           int64   `json:"clicks"`
	LinkClicks       int64   `json:"link_clicks"`
	OutboundClicks   int64   `json:"outbound_clicks"`
	LandingPageViews int64   `json:"landing_page_views"`

	Leads                         int64   `json:"leads"`
	Purchases                     int64   `json:"purchases"`
	PurchaseValue                 float64 `json:"purchase_value"`
	Schedules                     int64   `json:"schedules"`
	MessagingConversationsStarted int64   `json:"messaging_conversations_started"`

	VideoPlays     int64 `json:"video_plays"`
	VideoP25       int64 `json:"video_p25"`
	VideoP50       int64 `json:"video_p50"`
	VideoP75       int64 `json:"video_p75"`
	VideoP100      int64 `json:"video_p100"`
	VideoThruPlays int64 `json:"video_thruplays"`

	ActionsRaw      []byte `json:"-"`
	ActionValuesRaw []byte `json:"-"`
	ConversionsRaw  []byte `json:"-"`
}

func (i Insight) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		i.AccountID, i.Level, deref(i.CampaignID), deref(i.AdSetID), deref(i.AdID), i.Date.Format(time.DateOnly))
}

type BreakdownType string

const (
	BreakdownAgeGender BreakdownType = "age_gender"
	BreakdownDevice    BreakdownType = "device"
	BreakdownPlacement BreakdownType = "placement"
	BreakdownRegion    BreakdownType = "region"
	BreakdownHourly    BreakdownType = "hourly"
)

var breakdownDimensions = map[BreakdownType][]string{
	BreakdownAgeGender: {"age", "gender"},
	BreakdownDevice:    {"impression_device"},
	BreakdownPlacement: {"publisher_platform", "platform_position"},
	BreakdownRegion:    {"region"},
	BreakdownHourly:    {"hourly_stats_aggregated_by_advertiser_time_zone"},
}

// AllBreakdownTypes na ordem em que são sincronizados
var AllBreakdownTypes = []BreakdownType{
	BreakdownAgeGender,
	BreakdownDevice,
	BreakdownPlacement,
	BreakdownRegion,
	BreakdownHourly,
}

func ParseBreakdownType(s string) (BreakdownType, error) {
	bt := BreakdownType(s)
	if _, ok := breakdownDimensions[bt]; !ok {
		return "", fmt.Errorf("tipo de breakdown desconhecido: %q", s)
	}

	return bt, nil
}

func ParseBreakdownTypes(values []string) ([]BreakdownType, error) {
	types := make([]BreakdownType, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		bt, err := ParseBreakdownType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, bt)
	}

	return types, nil
}

// Dimensions devolve os campos de breakdown da API, no máximo dois
func (b BreakdownType) Dimensions() []string {
	return breakdownDimensions[b]
}

// InsightBreakdown é um recorte dimensional das métricas de uma conta em um dia
type InsightBreakdown struct {
	AccountID     string        `json:"account_id"`
	BreakdownType BreakdownType `json:"breakdown_type"`
	Date          time.Time     `json:"date"`
	Dimension1    string        `json:"dimension_1"`
	Dimension2    *string       `json:"dimension_2"`

	Spend         float64 `json:"spend"`
	Impressions   int64   `json:"impressions"`
	Reach         int64   `json:"reach"`
	Clicks        int64   `json:"clicks"`
	LinkClicks    int64   `json:"link_clicks"`
	Leads         int64   `json:"leads"`
	Purchases     int64   `json:"purchases"`
	PurchaseValue float64 `json:"purchase_value"`
	Schedules     int64   `json:"schedules"`
}

func (b InsightBreakdown) NaturalKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		b.AccountID, b.BreakdownType, b.Date.Format(time.DateOnly), b.Dimension1, deref(b.Dimension2))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
