package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDateRange = errors.New("intervalo de datas inválido")

// DateRange é um intervalo fechado de dias, [Since, Until]
type DateRange struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

func NewDateRange(since, until time.Time) (DateRange, error) {
	dr := DateRange{Since: truncateDay(since), Until: truncateDay(until)}
	if dr.Since.IsZero() || dr.Until.IsZero() || dr.Until.Before(dr.Since) {
		return DateRange{}, fmt.Errorf("%w: %s", ErrInvalidDateRange, dr)
	}

	return dr, nil
}

// SingleDay devolve o intervalo de um único dia
func SingleDay(day time.Time) DateRange {
	d := truncateDay(day)
	return DateRange{Since: d, Until: d}
}

func (d DateRange) NumDays() int {
	if d.Until.Before(d.Since) {
		return 0
	}

	return int(d.Until.Sub(d.Since).Hours()/24) + 1
}

// Days lista cada dia do intervalo, do mais antigo ao mais recente
func (d DateRange) Days() []time.Time {
	days := make([]time.Time, 0, d.NumDays())
	for day := d.Since; !day.After(d.Until); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

// Tail devolve os últimos n dias do intervalo. n <= 0 ou maior que o intervalo devolve o intervalo inteiro.
func (d DateRange) Tail(n int) DateRange {
	if n <= 0 || n >= d.NumDays() {
		return d
	}

	return DateRange{Since: d.Until.AddDate(0, 0, -(n - 1)), Until: d.Until}
}

// Split quebra o intervalo em janelas consecutivas de até batchDays dias, da mais antiga para a mais recente
func (d DateRange) Split(batchDays int) []DateRange {
	if batchDays <= 0 {
		return []DateRange{d}
	}

	var windows []DateRange
	for start := d.Since; !start.After(d.Until); start = start.AddDate(0, 0, batchDays) {
		end := start.AddDate(0, 0, batchDays-1)
		if end.After(d.Until) {
			end = d.Until
		}

		windows = append(windows, DateRange{Since: start, Until: end})
	}

	return windows
}

func (d DateRange) String() string {
	return fmt.Sprintf("%s..%s", d.Since.Format(time.DateOnly), d.Until.Format(time.DateOnly))
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
