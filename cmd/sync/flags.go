package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfg2006/traffic-manager-sync/internal/domain"
	"github.com/vfg2006/traffic-manager-sync/internal/scheduler"
	"github.com/vfg2006/traffic-manager-sync/pkg/utils"
)

var (
	errFromToTogether = errors.New("--from e --to devem ser informados juntos")
	errDaysWithRange  = errors.New("--days não pode ser combinado com --from/--to")
)

// runFlags são as opções comuns a uma execução avulsa
type runFlags struct {
	days           int
	from           string
	to             string
	force          bool
	skipBreakdowns bool
	levels         []string
	account        string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.days, "days", 0, "Sincroniza os últimos N dias terminando ontem")
	cmd.Flags().StringVar(&f.from, "from", "", "Data inicial (AAAA-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Data final (AAAA-MM-DD)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Sincroniza a estrutura mesmo que já tenha rodado hoje")
	cmd.Flags().BoolVar(&f.skipBreakdowns, "skip-breakdowns", false, "Não busca breakdowns")
	cmd.Flags().StringSliceVar(&f.levels, "levels", nil, "Níveis de insight (account,campaign,adset,ad)")
	cmd.Flags().StringVar(&f.account, "account", "", "Restringe a uma conta pelo external_id")
}

// request converte as flags no pedido de execução. Sem flags, sincroniza ontem.
func (f runFlags) request() (scheduler.RunRequest, error) {
	req, err := f.base()
	if err != nil {
		return req, err
	}

	hasRange := f.from != "" || f.to != ""

	switch {
	case hasRange && (f.from == "" || f.to == ""):
		return req, errFromToTogether
	case hasRange && f.days != 0:
		return req, errDaysWithRange
	case hasRange:
		from, err := utils.ParseDate(f.from)
		if err != nil {
			return req, fmt.Errorf("--from inválido: %w", err)
		}
		to, err := utils.ParseDate(f.to)
		if err != nil {
			return req, fmt.Errorf("--to inválido: %w", err)
		}

		req.Mode = domain.SyncTypeRange
		req.From = from
		req.To = to
	case f.days != 0:
		req.Mode = domain.SyncTypeDays
		req.Days = f.days
	default:
		req.Mode = domain.SyncTypeYesterday
	}

	return req, nil
}

func (f runFlags) backfillRequest(days, batchDays int) (scheduler.RunRequest, error) {
	req, err := f.base()
	if err != nil {
		return req, err
	}

	req.Mode = domain.SyncTypeBackfill
	req.Days = days
	req.BatchDays = batchDays

	return req, nil
}

func (f runFlags) base() (scheduler.RunRequest, error) {
	levels, err := domain.ParseInsightLevels(f.levels)
	if err != nil {
		return scheduler.RunRequest{}, err
	}

	return scheduler.RunRequest{
		Levels:            levels,
		AccountExternalID: f.account,
		ForceStructure:    f.force,
		SkipBreakdowns:    f.skipBreakdowns,
	}, nil
}
