// Package testutil provides an in-memory database and seed data for tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/media-blog/api-go/config"
	"github.com/media-blog/api-go/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

// Seed holds the taxonomy rows every post needs.
type Seed struct {
	Groups     []models.Group
	Categories []models.Category
	Durations  []models.Duration
	Links      []models.Link
}

// SeedTaxonomy creates 6 groups, 5 categories, durations of 10, 20 and 30
// minutes and 3 links. Durations are created in reverse so that row IDs never
// equal their values.
func SeedTaxonomy(t *testing.T, db *gorm.DB) *Seed {
	t.Helper()

	seed := &Seed{}
	for _, name := range []string{"Podcasts", "Art", "Music", "Cinema", "Books", "Events"} {
		g := models.Group{Name: name, Icon: "icons/" + name + ".png"}
		require.NoError(t, db.Create(&g).Error)
		seed.Groups = append(seed.Groups, g)
	}
	for _, name := range []string{"News", "Interviews", "Reviews", "Tutorials", "Stories"} {
		c := models.Category{Name: name, Icon: "icons/" + name + ".png"}
		require.NoError(t, db.Create(&c).Error)
		seed.Categories = append(seed.Categories, c)
	}
	for _, value := range []int{30, 20, 10} {
		d := models.Duration{Value: value}
		require.NoError(t, db.Create(&d).Error)
		seed.Durations = append(seed.Durations, d)
	}
	for _, name := range []string{"Instagram", "YouTube", "Spotify"} {
		l := models.Link{Name: name, Icon: "icons/" + name + ".png", URL: "https://" + name + ".example.com"}
		require.NoError(t, db.Create(&l).Error)
		seed.Links = append(seed.Links, l)
	}
	return seed
}

// Duration returns the seeded duration row with the given value.
func (s *Seed) Duration(t *testing.T, value int) models.Duration {
	t.Helper()
	for _, d := range s.Durations {
		if d.Value == value {
			return d
		}
	}
	t.Fatalf("no seeded duration of %d minutes", value)
	return models.Duration{}
}

// PostOptions describe a post to create. Zero group, category and duration
// fall back to the first seeded group, the first category and 10 minutes.
type PostOptions struct {
	Title    string
	Group    *models.Group
	Category *models.Category
	Duration int
	Text     string
	Links    []models.Link
	Image    string
	Audio    string
	Video    string
}

func (s *Seed) CreatePost(t *testing.T, db *gorm.DB, opts PostOptions) *models.Post {
	t.Helper()

	group := s.Groups[0]
	if opts.Group != nil {
		group = *opts.Group
	}
	category := s.Categories[0]
	if opts.Category != nil {
		category = *opts.Category
	}
	value := opts.Duration
	if value == 0 {
		value = 10
	}

	post := &models.Post{
		Title:      opts.Title,
		GroupID:    group.ID,
		CategoryID: category.ID,
		DurationID: s.Duration(t, value).ID,
		Image:      opts.Image,
		Audio:      opts.Audio,
		Video:      opts.Video,
	}
	if opts.Text != "" {
		text := opts.Text
		post.Text = &text
	}
	for _, l := range opts.Links {
		post.Links = append(post.Links, models.Link{ID: l.ID})
	}

	require.NoError(t, db.Omit("Group", "Category", "Duration", "Links.*").Create(post).Error)
	return post
}
