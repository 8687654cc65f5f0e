package metadomain

type LinkData struct {
	Picture      string        `json:"picture"`
	ImageURL     string        `json:"image_url"`
	Message      string        `json:"message"`
	Name         string        `json:"name"`
	CallToAction *CallToAction `json:"call_to_action,omitempty"`
}

type PhotoData struct {
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
}

type VideoData struct {
	VideoID      string        `json:"video_id"`
	ImageURL     string        `json:"image_url"`
	Title        string        `json:"title"`
	Message      string        `json:"message"`
	CallToAction *CallToAction `json:"call_to_action,omitempty"`
}

type CallToAction struct {
	Type string `json:"type"`
}

type ObjectStorySpec struct {
	LinkData  *LinkData  `json:"link_data,omitempty"`
	PhotoData *PhotoData `json:"photo_data,omitempty"`
	VideoData *VideoData `json:"video_data,omitempty"`
}

type Creative struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Title            string           `json:"title"`
	Body             string           `json:"body"`
	ImageURL         string           `json:"image_url"`
	ThumbnailURL     string           `json:"thumbnail_url"`
	VideoID          string           `json:"video_id"`
	CallToActionType string           `json:"call_to_action_type"`
	ObjectStorySpec  *ObjectStorySpec `json:"object_story_spec,omitempty"`
}

// Video é a resposta de /{video_id}?fields=source,picture
type Video struct {
	ID      string `json:"id"`
	Source  string `json:"source"`
	Picture string `json:"picture"`
}

// ResolveImageURL escolhe a melhor imagem disponível, na ordem:
// image_url, link_data, photo_data, video_data e por último a miniatura.
func (c *Creative) ResolveImageURL() string {
	if c.ImageURL != "" {
		return c.ImageURL
	}

	if spec := c.ObjectStorySpec; spec != nil {
		if spec.LinkData != nil {
			if spec.LinkData.Picture != "" {
				return spec.LinkData.Picture
			}
			if spec.LinkData.ImageURL != "" {
				return spec.LinkData.ImageURL
			}
		}

		if spec.PhotoData != nil {
			if spec.PhotoData.URL != "" {
				return spec.PhotoData.URL
			}
			if spec.PhotoData.ImageURL != "" {
				return spec.PhotoData.ImageURL
			}
		}

		if spec.VideoData != nil && spec.VideoData.ImageURL != "" {
			return spec.VideoData.ImageURL
		}
	}

	return c.ThumbnailURL
}

// ResolveVideoID devolve o vídeo embutido no criativo, se houver
func (c *Creative) ResolveVideoID() string {
	if c.VideoID != "" {
		return c.VideoID
	}

	if c.ObjectStorySpec != nil && c.ObjectStorySpec.VideoData != nil {
		return c.ObjectStorySpec.VideoData.VideoID
	}

	return ""
}

func (c *Creative) ResolveHeadline() string {
	if c.Title != "" {
		return c.Title
	}

	if spec := c.ObjectStorySpec; spec != nil {
		if spec.LinkData != nil && spec.LinkData.Name != "" {
			return spec.LinkData.Name
		}
		if spec.VideoData != nil && spec.VideoData.Title != "" {
			return spec.VideoData.Title
		}
	}

	return ""
}

func (c *Creative) ResolveBody() string {
	if c.Body != "" {
		return c.Body
	}

	if spec := c.ObjectStorySpec; spec != nil {
		if spec.LinkData != nil && spec.LinkData.Message != "" {
			return spec.LinkData.Message
		}
		if spec.VideoData != nil && spec.VideoData.Message != "" {
			return spec.VideoData.Message
		}
	}

	return ""
}

func (c *Creative) ResolveCallToAction() string {
	if c.CallToActionType != "" {
		return c.CallToActionType
	}

	if spec := c.ObjectStorySpec; spec != nil {
		if spec.LinkData != nil && spec.LinkData.CallToAction != nil {
			return spec.LinkData.CallToAction.Type
		}
		if spec.VideoData != nil && spec.VideoData.CallToAction != nil {
			return spec.VideoData.CallToAction.Type
		}
	}

	return ""
}
