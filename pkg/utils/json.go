package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa in com indentação. Bytes são tratados como JSON já serializado.
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			logrus.WithError(err).Debug("PrettyJson: conteúdo não é JSON")
			return string(raw)
		}
		in = decoded
	}

	out, err := json.MarshalIndent(in, "", "\t")
	if err != nil {
		logrus.WithError(err).Debug("PrettyJson: falha ao serializar")
		return ""
	}

	return string(out)
}
