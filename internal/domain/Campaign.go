package domain

import "time"

// Campaign, AdSet e Ad espelham a estrutura da conta na plataforma.
// Valores de orçamento já vêm convertidos de centavos para a moeda da conta.
type Campaign struct {
	PlatformID      string     `json:"platform_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	Objective       string     `json:"objective"`
	BuyingType      string     `json:"buying_type"`
	BidStrategy     string     `json:"bid_strategy"`
	DailyBudget     *float64   `json:"daily_budget"`
	LifetimeBudget  *float64   `json:"lifetime_budget"`
	BudgetRemaining *float64   `json:"budget_remaining"`
	StartTime       *time.Time `json:"start_time"`
	StopTime        *time.Time `json:"stop_time"`
	CreatedTime     *time.Time `json:"created_time"`
	UpdatedTime     *time.Time `json:"updated_time"`
}

type AdSet struct {
	PlatformID         string     `json:"platform_id"`
	CampaignPlatformID string     `json:"campaign_platform_id"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	EffectiveStatus    string     `json:"effective_status"`
	OptimizationGoal   string     `json:"optimization_goal"`
	BillingEvent       string     `json:"billing_event"`
	BidStrategy        string     `json:"bid_strategy"`
	BidAmount          *float64   `json:"bid_amount"`
	DailyBudget        *float64   `json:"daily_budget"`
	LifetimeBudget     *float64   `json:"lifetime_budget"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	CreatedTime        *time.Time `json:"created_time"`
	UpdatedTime        *time.Time `json:"updated_time"`
}

type Ad struct {
	PlatformID         string     `json:"platform_id"`
	AdSetPlatformID    string     `json:"adset_platform_id"`
	CampaignPlatformID string     `json:"campaign_platform_id"`
	CreativePlatformID string     `json:"creative_platform_id"`
	Name               string     `json:"name"`
	Status             string     `json:"status"`
	EffectiveStatus    string     `json:"effective_status"`
	CreatedTime        *time.Time `json:"created_time"`
	UpdatedTime        *time.Time `json:"updated_time"`
}

// CreativeRequest identifica um anúncio que ainda não tem criativo salvo
type CreativeRequest struct {
	AdPlatformID       string
	CreativePlatformID string
}

// Creative guarda os campos desnormalizados do criativo de um anúncio.
// Campos nil não são gravados.
type Creative struct {
	AdPlatformID       string  `json:"ad_platform_id"`
	CreativePlatformID string  `json:"creative_platform_id"`
	ImageURL           *string `json:"image_url"`
	VideoURL           *string `json:"video_url"`
	ThumbnailURL       *string `json:"thumbnail_url"`
	Headline           *string `json:"headline"`
	Body               *string `json:"body"`
	CallToAction       *string `json:"call_to_action"`
}

// IsEmpty indica que nenhum campo do criativo foi resolvido
func (c Creative) IsEmpty() bool {
	return c.ImageURL == nil &&
		c.VideoURL == nil &&
		c.ThumbnailURL == nil &&
		c.Headline == nil &&
		c.Body == nil &&
		c.CallToAction == nil
}
