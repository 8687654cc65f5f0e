package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDateRange_Split(t *testing.T) {
	tests := []struct {
		name      string
		since     string
		until     string
		batchDays int
		want      int
	}{
		{name: "90 dias em janelas de 14", since: "2025-11-13", until: "2026-02-10", batchDays: 14, want: 7},
		{name: "Intervalo menor que a janela", since: "2026-02-01", until: "2026-02-03", batchDays: 14, want: 1},
		{name: "Múltiplo exato", since: "2026-01-01", until: "2026-01-28", batchDays: 14, want: 2},
		{name: "Janela zero não divide", since: "2026-01-01", until: "2026-01-28", batchDays: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr, err := NewDateRange(day(tt.since), day(tt.until))
			require.NoError(t, err)

			windows := dr.Split(tt.batchDays)
			require.Len(t, windows, tt.want)

			assert.Equal(t, dr.Since, windows[0].Since)
			assert.Equal(t, dr.Until, windows[len(windows)-1].Until)

			total := 0
			for i, w := range windows {
				total += w.NumDays()
				if tt.batchDays > 0 {
					assert.LessOrEqual(t, w.NumDays(), tt.batchDays)
				}
				if i > 0 {
					// sem buracos nem sobreposição
					assert.Equal(t, windows[i-1].Until.AddDate(0, 0, 1), w.Since)
				}
			}
			assert.Equal(t, dr.NumDays(), total)
		})
	}
}

func TestDateRange_Tail(t *testing.T) {
	dr, err := NewDateRange(day("2026-02-01"), day("2026-02-10"))
	require.NoError(t, err)

	assert.Equal(t, DateRange{Since: day("2026-02-09"), Until: day("2026-02-10")}, dr.Tail(2))
	assert.Equal(t, dr, dr.Tail(0))
	assert.Equal(t, dr, dr.Tail(30))
}

func TestDateRange_Days(t *testing.T) {
	dr := DateRange{Since: day("2026-02-27"), Until: day("2026-03-02")}

	days := dr.Days()

	require.Len(t, days, 4)
	assert.Equal(t, "2026-02-28", days[1].Format(time.DateOnly))
	assert.Equal(t, "2026-03-01", days[2].Format(time.DateOnly))
}

func TestNewDateRange_Invalid(t *testing.T) {
	_, err := NewDateRange(day("2026-02-10"), day("2026-02-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = NewDateRange(time.Time{}, day("2026-02-01"))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
