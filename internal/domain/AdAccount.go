package domain

import (
	"time"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é a conta de anúncios de um cliente dentro da organização.
// O pipeline só escreve LastSyncedAt; o resto é editado pelo painel.
type AdAccount struct {
	ID                  string          `json:"id"`
	OrganizationID      string          `json:"organization_id"`
	ExternalID          string          `json:"external_id"`
	Name                string          `json:"name"`
	Objective           *string         `json:"objective"`
	PrimaryActionType   *string         `json:"primary_action_type"`
	TargetCostPerResult *float64        `json:"target_cost_per_result"`
	TargetROAS          *float64        `json:"target_roas"`
	Status              AdAccountStatus `json:"status"`
	LastSyncedAt        *time.Time      `json:"last_synced_at"`
}

// ResultActionType devolve o tipo de ação configurado como resultado da conta, ou "" quando não há
func (a *AdAccount) ResultActionType() string {
	if a == nil || a.PrimaryActionType == nil {
		return ""
	}

	return *a.PrimaryActionType
}

// SyncedOn indica se a conta já foi sincronizada no mesmo dia de ref
func (a *AdAccount) SyncedOn(ref time.Time) bool {
	if a == nil || a.LastSyncedAt == nil {
		return false
	}

	return isSameDate(a.LastSyncedAt.In(ref.Location()), ref)
}

func isSameDate(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
