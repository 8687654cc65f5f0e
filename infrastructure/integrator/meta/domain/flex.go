package metadomain

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// TimeLayout é o formato de data e hora devolvido pela API do Meta
const TimeLayout = "2006-01-02T15:04:05-0700"

// FlexString aceita tanto "12.5" quanto 12.5 no JSON. A API alterna entre os dois
// conforme o campo e a versão.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// Float devolve o valor numérico; ok é falso quando vazio ou inválido
func (f FlexString) Float() (float64, bool) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// FloatOrZero é Float ignorando a validade
func (f FlexString) FloatOrZero() float64 {
	v, _ := f.Float()
	return v
}

// MinorUnits converte valores em centavos para a unidade da moeda. Vazio vira nil.
func (f FlexString) MinorUnits() *float64 {
	v, ok := f.Float()
	if !ok {
		return nil
	}

	major := v / 100
	return &major
}

// ParseTime converte datas da API. Valores vazios ou inválidos viram nil.
func ParseTime(s string) *time.Time {
	if s == "" {
		return nil
	}

	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil
		}
	}

	return &t
}
