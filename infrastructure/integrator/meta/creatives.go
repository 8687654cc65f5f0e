package meta

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-manager-sync/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-manager-sync/internal/domain"
)

const creativeFields = "id,name,title,body,image_url,thumbnail_url,video_id,call_to_action_type,object_story_spec"

// GetCreatives resolve o criativo de cada anúncio com chamadas individuais.
// O lote só agrupa o log; a sintaxe aninhada de criativos não é confiável nas versões recentes.
// Um anúncio com falha gera um criativo vazio e uma entrada em Failures.
func (s *MetaIntegrator) GetCreatives(ctx context.Context, requests []domain.CreativeRequest) domain.BatchResult[domain.Creative] {
	var result domain.BatchResult[domain.Creative]

	batchSize := s.cfg.Sync.CreativeBatchSize
	if batchSize <= 0 {
		batchSize = 50
	}

	for start := 0; start < len(requests); start += batchSize {
		end := min(start+batchSize, len(requests))

		logrus.WithFields(logrus.Fields{
			"from":  start + 1,
			"to":    end,
			"total": len(requests),
		}).Debug("meta: buscando lote de criativos")

		for _, req := range requests[start:end] {
			if ctx.Err() != nil {
				result.Items = append(result.Items, domain.Creative{AdPlatformID: req.AdPlatformID})
				result.Fail(req.AdPlatformID, ctx.Err())
				continue
			}

			creative, err := s.getCreative(ctx, req, &result)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"ad_id": req.AdPlatformID,
					"error": err.Error(),
				}).Warn("meta: falha ao buscar criativo do anúncio")

				result.Items = append(result.Items, domain.Creative{
					AdPlatformID:       req.AdPlatformID,
					CreativePlatformID: req.CreativePlatformID,
				})
				result.Fail(req.AdPlatformID, err)
				continue
			}

			result.Items = append(result.Items, creative)
		}
	}

	return result
}

func (s *MetaIntegrator) getCreative(ctx context.Context, req domain.CreativeRequest, result *domain.BatchResult[domain.Creative]) (domain.Creative, error) {
	creativeID := req.CreativePlatformID
	if creativeID == "" {
		params := url.Values{}
		params.Add("fields", "creative{id}")

		ad, err := metaclient.FetchOne[metadomain.Ad](ctx, s.Client, metaclient.BuildURL(s.cfg.Meta.URL, req.AdPlatformID, params))
		if err != nil {
			return domain.Creative{}, err
		}

		creativeID = ad.CreativeID()
	}

	out := domain.Creative{AdPlatformID: req.AdPlatformID, CreativePlatformID: creativeID}
	if creativeID == "" {
		return out, nil
	}

	params := url.Values{}
	params.Add("fields", creativeFields)

	creative, err := metaclient.FetchOne[metadomain.Creative](ctx, s.Client, metaclient.BuildURL(s.cfg.Meta.URL, creativeID, params))
	if err != nil {
		return out, err
	}

	out.ImageURL = optionalString(creative.ResolveImageURL())
	out.ThumbnailURL = optionalString(creative.ThumbnailURL)
	out.Headline = optionalString(creative.ResolveHeadline())
	out.Body = optionalString(creative.ResolveBody())
	out.CallToAction = optionalString(creative.ResolveCallToAction())

	videoID := creative.ResolveVideoID()
	if videoID == "" {
		return out, nil
	}

	// A falha ao resolver o vídeo não invalida o restante do criativo
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ad_id":    req.AdPlatformID,
			"video_id": videoID,
			"error":    err.Error(),
		}).Warn("meta: falha ao resolver vídeo do criativo")
		result.Fail(req.AdPlatformID, err)
		return out, nil
	}

	out.VideoURL = optionalString(video.Source)
	if out.ThumbnailURL == nil {
		out.ThumbnailURL = optionalString(video.Picture)
	}

	return out, nil
}

func (s *MetaIntegrator) getVideo(ctx context.Context, videoID string) (*metadomain.Video, error) {
	params := url.Values{}
	params.Add("fields", "source,picture")

	return metaclient.FetchOne[metadomain.Video](ctx, s.Client, metaclient.BuildURL(s.cfg.Meta.URL, videoID, params))
}
