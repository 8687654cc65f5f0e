package utils

import (
	"fmt"
	"time"
)

// ParseDate interpreta uma data AAAA-MM-DD como dia civil em UTC.
// A API de anúncios já devolve as datas no fuso da conta; não há conversão.
func ParseDate(dateStr string) (time.Time, error) {
	date, err := time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q, esperado AAAA-MM-DD: %w", dateStr, err)
	}

	return date, nil
}
