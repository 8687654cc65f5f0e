package metadomain

import jsoniter "github.com/json-iterator/go"

// Action é um item de actions, action_values, conversions e dos arrays de vídeo
type Action struct {
	ActionType string     `json:"action_type"`
	Value      FlexString `json:"value"`
}

// InsightRow é uma linha diária de /insights. Todos os arrays de ações ficam em bruto:
// um array malformado é descartado na normalização sem perder o resto da linha.
type InsightRow struct {
	AccountID    string     `json:"account_id"`
	CampaignID   string     `json:"campaign_id"`
	CampaignName string     `json:"campaign_name"`
	AdSetID      string     `json:"adset_id"`
	AdSetName    string     `json:"adset_name"`
	AdID         string     `json:"ad_id"`
	AdName       string     `json:"ad_name"`
	DateStart    string     `json:"date_start"`
	DateStop     string     `json:"date_stop"`
	Spend        FlexString `json:"spend"`
	Impressions  FlexString `json:"impressions"`
	Reach        FlexString `json:"reach"`
	Frequency    FlexString `json:"frequency"`
	Clicks       FlexString `json:"clicks"`

	InlineLinkClicks FlexString          `json:"inline_link_clicks"`
	OutboundClicks   jsoniter.RawMessage `json:"outbound_clicks"`

	Actions          jsoniter.RawMessage `json:"actions"`
	ActionValues     jsoniter.RawMessage `json:"action_values"`
	Conversions      jsoniter.RawMessage `json:"conversions"`
	ConversionValues jsoniter.RawMessage `json:"conversion_values"`

	VideoPlayActions        jsoniter.RawMessage `json:"video_play_actions"`
	VideoP25WatchedActions  jsoniter.RawMessage `json:"video_p25_watched_actions"`
	VideoP50WatchedActions  jsoniter.RawMessage `json:"video_p50_watched_actions"`
	VideoP75WatchedActions  jsoniter.RawMessage `json:"video_p75_watched_actions"`
	VideoP100WatchedActions jsoniter.RawMessage `json:"video_p100_watched_actions"`
	VideoThruPlayActions    jsoniter.RawMessage `json:"video_thruplay_watched_actions"`

	// Campos de breakdown; só um ou dois vêm preenchidos por chamada
	Age               string `json:"age,omitempty"`
	Gender            string `json:"gender,omitempty"`
	ImpressionDevice  string `json:"impression_device,omitempty"`
	PublisherPlatform string `json:"publisher_platform,omitempty"`
	PlatformPosition  string `json:"platform_position,omitempty"`
	Region            string `json:"region,omitempty"`
	HourlyStats       string `json:"hourly_stats_aggregated_by_advertiser_time_zone,omitempty"`
}

// Dimension devolve o valor de um campo de breakdown pelo nome usado na API
func (r *InsightRow) Dimension(field string) string {
	switch field {
	case "age":
		return r.Age
	case "gender":
		return r.Gender
	case "impression_device":
		return r.ImpressionDevice
	case "publisher_platform":
		return r.PublisherPlatform
	case "platform_position":
		return r.PlatformPosition
	case "region":
		return r.Region
	case "hourly_stats_aggregated_by_advertiser_time_zone":
		return r.HourlyStats
	}

	return ""
}
