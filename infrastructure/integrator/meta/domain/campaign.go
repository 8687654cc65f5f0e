package metadomain

import jsoniter "github.com/json-iterator/go"

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}

// Page é o envelope de toda listagem da Graph API
type Page struct {
	Data   []jsoniter.RawMessage `json:"data"`
	Paging *Paging               `json:"paging,omitempty"`
}

// NextURL devolve o cursor da próxima página ou "" na última
func (p *Page) NextURL() string {
	if p == nil || p.Paging == nil {
		return ""
	}

	return p.Paging.Next
}

type Campaign struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	Objective       string     `json:"objective"`
	BuyingType      string     `json:"buying_type"`
	BidStrategy     string     `json:"bid_strategy"`
	DailyBudget     FlexString `json:"daily_budget"`
	LifetimeBudget  FlexString `json:"lifetime_budget"`
	BudgetRemaining FlexString `json:"budget_remaining"`
	StartTime       string     `json:"start_time"`
	StopTime        string     `json:"stop_time"`
	CreatedTime     string     `json:"created_time"`
	UpdatedTime     string     `json:"updated_time"`
}

type AdSet struct {
	ID               string     `json:"id"`
	CampaignID       string     `json:"campaign_id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	EffectiveStatus  string     `json:"effective_status"`
	OptimizationGoal string     `json:"optimization_goal"`
	BillingEvent     string     `json:"billing_event"`
	BidStrategy      string     `json:"bid_strategy"`
	BidAmount        FlexString `json:"bid_amount"`
	DailyBudget      FlexString `json:"daily_budget"`
	LifetimeBudget   FlexString `json:"lifetime_budget"`
	StartTime        string     `json:"start_time"`
	EndTime          string     `json:"end_time"`
	CreatedTime      string     `json:"created_time"`
	UpdatedTime      string     `json:"updated_time"`
}

type AdCreativeRef struct {
	ID string `json:"id"`
}

type Ad struct {
	ID              string         `json:"id"`
	AdSetID         string         `json:"adset_id"`
	CampaignID      string         `json:"campaign_id"`
	Name            string         `json:"name"`
	Status          string         `json:"status"`
	EffectiveStatus string         `json:"effective_status"`
	Creative        *AdCreativeRef `json:"creative,omitempty"`
	CreatedTime     string         `json:"created_time"`
	UpdatedTime     string         `json:"updated_time"`
}

func (a *Ad) CreativeID() string {
	if a.Creative == nil {
		return ""
	}

	return a.Creative.ID
}
