package serializers

import (
	"time"

	"github.com/media-blog/api-go/models"
)

const (
	PostTypeVideo  = "video"
	PostTypeAudio  = "audio"
	PostTypeSocial = "social"
	PostTypeNone   = ""
)

// PostDetail is the full representation of a post.
type PostDetail struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Group     uint       `json:"group"`
	Category  uint       `json:"category"`
	Duration  int        `json:"duration"`
	Text      *string    `json:"text"`
	Links     []LinkData `json:"links"`
	Image     *string    `json:"image"`
	Audio     *string    `json:"audio"`
	Video     *string    `json:"video"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PostSummary is the short representation used by summary listings.
type PostSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	PostType string `json:"post_type"`
}

// PostType reports the primary media of a post. Video beats audio, audio
// beats links, and a post with none of them has an empty type.
func PostType(p *models.Post) string {
	switch {
	case p.HasVideo():
		return PostTypeVideo
	case p.HasAudio():
		return PostTypeAudio
	case p.HasLinks():
		return PostTypeSocial
	default:
		return PostTypeNone
	}
}

// PostDetail expects Duration and Links to be loaded.
func (s *Serializer) PostDetail(p *models.Post) PostDetail {
	links := make([]LinkData, 0, len(p.Links))
	for i := range p.Links {
		links = append(links, s.Link(&p.Links[i]))
	}

	return PostDetail{
		ID:        p.ID,
		Title:     p.Title,
		Group:     p.GroupID,
		Category:  p.CategoryID,
		Duration:  p.Duration.Value,
		Text:      p.Text,
		Links:     links,
		Image:     s.mediaURL(p.Image),
		Audio:     s.mediaURL(p.Audio),
		Video:     s.mediaURL(p.Video),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (s *Serializer) PostSummary(p *models.Post) PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, PostType: PostType(p)}
}

// Post renders one post in detail or summary form.
func (s *Serializer) Post(p *models.Post, summary bool) interface{} {
	if summary {
		return s.PostSummary(p)
	}
	return s.PostDetail(p)
}

// Posts renders a page of posts in detail or summary form.
func (s *Serializer) Posts(posts []models.Post, summary bool) interface{} {
	if summary {
		out := make([]PostSummary, 0, len(posts))
		for i := range posts {
			out = append(out, s.PostSummary(&posts[i]))
		}
		return out
	}

	out := make([]PostDetail, 0, len(posts))
	for i := range posts {
		out = append(out, s.PostDetail(&posts[i]))
	}
	return out
}
