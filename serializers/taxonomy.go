package serializers

import (
	"github.com/media-blog/api-go/models"
)

type GroupData struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type CategoryData struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type LinkData struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
	URL  string  `json:"url"`
}

func (s *Serializer) Group(g *models.Group) GroupData {
	return GroupData{ID: g.ID, Name: g.Name, Icon: s.mediaURL(g.Icon)}
}

func (s *Serializer) Groups(groups []models.Group) []GroupData {
	out := make([]GroupData, 0, len(groups))
	for i := range groups {
		out = append(out, s.Group(&groups[i]))
	}
	return out
}

func (s *Serializer) Category(c *models.Category) CategoryData {
	return CategoryData{ID: c.ID, Name: c.Name, Icon: s.mediaURL(c.Icon)}
}

func (s *Serializer) Categories(categories []models.Category) []CategoryData {
	out := make([]CategoryData, 0, len(categories))
	for i := range categories {
		out = append(out, s.Category(&categories[i]))
	}
	return out
}

func (s *Serializer) Link(l *models.Link) LinkData {
	return LinkData{ID: l.ID, Name: l.Name, Icon: s.mediaURL(l.Icon), URL: l.URL}
}
