package meta

import (
	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

// FactoryCampaign converte a campanha da API. Orçamentos chegam em centavos.
func FactoryCampaign(c *metadomain.Campaign) domain.Campaign {
	return domain.Campaign{
		PlatformID:      c.ID,
		Name:            c.Name,
		Status:          c.Status,
		EffectiveStatus: c.EffectiveStatus,
		Objective:       c.Objective,
		BuyingType:      c.BuyingType,
		BidStrategy:     c.BidStrategy,
		DailyBudget:     c.DailyBudget.MinorUnits(),
		LifetimeBudget:  c.LifetimeBudget.MinorUnits(),
		BudgetRemaining: c.BudgetRemaining.MinorUnits(),
		StartTime:       metadomain.ParseTime(c.StartTime),
		StopTime:        metadomain.ParseTime(c.StopTime),
		CreatedTime:     metadomain.ParseTime(c.CreatedTime),
		UpdatedTime:     metadomain.ParseTime(c.UpdatedTime),
	}
}

func FactoryAdSet(a *metadomain.AdSet) domain.AdSet {
	return domain.AdSet{
		PlatformID:         a.ID,
		CampaignPlatformID: a.CampaignID,
		Name:               a.Name,
		Status:             a.Status,
		EffectiveStatus:    a.EffectiveStatus,
		OptimizationGoal:   a.OptimizationGoal,
		BillingEvent:       a.BillingEvent,
		BidStrategy:        a.BidStrategy,
		BidAmount:          a.BidAmount.MinorUnits(),
		DailyBudget:        a.DailyBudget.MinorUnits(),
		LifetimeBudget:     a.LifetimeBudget.MinorUnits(),
		StartTime:          metadomain.ParseTime(a.StartTime),
		EndTime:            metadomain.ParseTime(a.EndTime),
		CreatedTime:        metadomain.ParseTime(a.CreatedTime),
		UpdatedTime:        metadomain.ParseTime(a.UpdatedTime),
	}
}

func FactoryAd(a *metadomain.Ad) domain.Ad {
	return domain.Ad{
		PlatformID:         a.ID,
		AdSetPlatformID:    a.AdSetID,
		CampaignPlatformID: a.CampaignID,
		CreativePlatformID: a.CreativeID(),
		Name:               a.Name,
		Status:             a.Status,
		EffectiveStatus:    a.EffectiveStatus,
		CreatedTime:        metadomain.ParseTime(a.CreatedTime),
		UpdatedTime:        metadomain.ParseTime(a.UpdatedTime),
	}
}

func factoryAds(ads []metadomain.Ad) []domain.Ad {
	result := make([]domain.Ad, 0, len(ads))
	for i := range ads {
		result = append(result, FactoryAd(&ads[i]))
	}

	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
