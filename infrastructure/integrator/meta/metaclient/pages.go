package metaclient

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/pkg/log"
)

func (c *MetaClient) FetchAllPages(ctx context.Context, rawURL string) ([]jsoniter.RawMessage, error) {
	var records []jsoniter.RawMessage

	visited := make(map[string]struct{})
	next := rawURL

	for page := 1; next != ""; page++ {
		if _, ok := visited[next]; ok {
			log.ForContext(ctx).WithField("path", redact(next)).Warn("Cursor de paginação repetido, encerrando a leitura")
			break
		}
		visited[next] = struct{}{}

		body, err := c.FetchJSON(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar página %d: %w", page, err)
		}

		var resp metadomain.Page
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, &APIError{Kind: KindPermanent, Message: fmt.Sprintf("página %d com JSON inválido", page), Err: err}
		}

		records = append(records, resp.Data...)
		next = resp.NextURL()
	}

	return records, nil
}

// FetchAll decodifica todas as páginas em T. Registros que não decodificam são ignorados e logados.
func FetchAll[T any](ctx context.Context, c Client, rawURL string) ([]T, error) {
	raw, err := c.FetchAllPages(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raw))
	for i, record := range raw {
		var item T
		if err := json.Unmarshal(record, &item); err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"index": i,
				"path":  redact(rawURL),
			}).WithError(err).Warn("Registro ignorado: JSON inválido")
			continue
		}

		items = append(items, item)
	}

	return items, nil
}

// FetchOne decodifica a resposta de um único objeto
func FetchOne[T any](ctx context.Context, c Client, rawURL string) (*T, error) {
	body, err := c.FetchJSON(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, &APIError{Kind: KindPermanent, Message: "resposta com JSON inválido", Err: err}
	}

	return &item, nil
}
