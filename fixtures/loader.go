package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/media-blog/api-go/models"
	"github.com/media-blog/api-go/repository"
	"github.com/media-blog/api-go/storage"
	"gorm.io/gorm"
)

// Summary counts the records created by a load.
type Summary struct {
	Groups     int
	Categories int
	Durations  int
	Links      int
	Posts      int
	Uploaded   int
	// Missing counts referenced storage keys that no stored file backs.
	Missing int
}

// Loader writes fixtures in one transaction. Media values naming a file in
// Files are uploaded through Media; other values are kept as storage keys.
type Loader struct {
	DB    *gorm.DB
	Media storage.MediaStorage
	Files fs.FS
}

func NewLoader(db *gorm.DB, media storage.MediaStorage, files fs.FS) *Loader {
	return &Loader{DB: db, Media: media, Files: files}
}

// LoadFile decodes the fixture at path and loads it, resolving media paths
// relative to the fixture's directory.
func LoadFile(ctx context.Context, db *gorm.DB, media storage.MediaStorage, path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	data, err := Decode(f)
	if err != nil {
		return nil, err
	}

	return NewLoader(db, media, os.DirFS(filepath.Dir(path))).Load(ctx, data)
}

// Load creates every record of data. Any failure rolls the whole load back
// and removes files uploaded so far.
func (l *Loader) Load(ctx context.Context, data *Fixture) (*Summary, error) {
	run := &loadRun{loader: l, ctx: ctx}

	err := l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return run.load(tx, data)
	})
	if err != nil {
		for _, key := range run.uploaded {
			if derr := l.Media.Delete(ctx, key); derr != nil {
				log.Printf("Failed to remove uploaded file %s: %v", key, derr)
			}
		}
		return nil, err
	}

	run.summary.Uploaded = len(run.uploaded)
	return &run.summary, nil
}

type loadRun struct {
	loader   *Loader
	ctx      context.Context
	summary  Summary
	uploaded []string

	groups     map[uint]uint
	categories map[uint]uint
	durations  map[uint]uint
	links      map[uint]uint
}

func (r *loadRun) load(tx *gorm.DB, data *Fixture) error {
	r.groups = make(map[uint]uint, len(data.Groups))
	for _, g := range data.Groups {
		icon, err := r.media(storage.FolderIcons, g.Icon)
		if err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
		group := models.Group{Name: g.Name, Icon: icon}
		if err := tx.Create(&group).Error; err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
		r.groups[g.ID] = group.ID
		r.summary.Groups++
	}

	r.categories = make(map[uint]uint, len(data.Categories))
	for _, c := range data.Categories {
		icon, err := r.media(storage.FolderIcons, c.Icon)
		if err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		category := models.Category{Name: c.Name, Icon: icon}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("category %q: %w", c.Name, err)
		}
		r.categories[c.ID] = category.ID
		r.summary.Categories++
	}

	r.durations = make(map[uint]uint, len(data.Durations))
	for _, d := range data.Durations {
		duration := models.Duration{Value: d.Value}
		if err := tx.Create(&duration).Error; err != nil {
			return fmt.Errorf("duration %d: %w", d.Value, err)
		}
		r.durations[d.ID] = duration.ID
		r.summary.Durations++
	}

	r.links = make(map[uint]uint, len(data.Links))
	for _, l := range data.Links {
		icon, err := r.media(storage.FolderIcons, l.Icon)
		if err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
		link := models.Link{Name: l.Name, Icon: icon, URL: l.URL}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
		r.links[l.ID] = link.ID
		r.summary.Links++
	}

	posts := repository.NewPostRepository(tx)
	for _, p := range data.Posts {
		post, err := r.post(p)
		if err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		if err := posts.Create(r.ctx, post); err != nil {
			return fmt.Errorf("post %q: %w", p.Title, err)
		}
		r.summary.Posts++
	}
	return nil
}

func (r *loadRun) post(p PostFixture) (*models.Post, error) {
	post := &models.Post{Title: p.Title, Text: p.Text}

	var ok bool
	if post.GroupID, ok = r.groups[p.Group]; !ok {
		return nil, fmt.Errorf("unknown group %d", p.Group)
	}
	if post.CategoryID, ok = r.categories[p.Category]; !ok {
		return nil, fmt.Errorf("unknown category %d", p.Category)
	}
	if post.DurationID, ok = r.durations[p.Duration]; !ok {
		return nil, fmt.Errorf("unknown duration %d", p.Duration)
	}

	seen := make(map[uint]bool, len(p.Links))
	for _, ref := range p.Links {
		id, ok := r.links[ref]
		if !ok {
			return nil, fmt.Errorf("unknown link %d", ref)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		post.Links = append(post.Links, models.Link{ID: id})
	}

	var err error
	if post.Image, err = r.media(storage.FolderImages, p.Image); err != nil {
		return nil, err
	}
	if post.Audio, err = r.media(storage.FolderAudios, p.Audio); err != nil {
		return nil, err
	}
	if post.Video, err = r.media(storage.FolderVideos, p.Video); err != nil {
		return nil, err
	}
	return post, nil
}

// media uploads value when it names a fixture file and returns the storage key.
func (r *loadRun) media(folder, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if r.loader.Files == nil {
		return r.storedKey(folder, value)
	}

	f, err := r.loader.Files.Open(value)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return r.storedKey(folder, value)
	}
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", value, err)
	}
	defer f.Close()

	key, err := r.loader.Media.Save(r.ctx, folder, filepath.Base(value), f)
	if err != nil {
		return "", err
	}
	r.uploaded = append(r.uploaded, key)
	return key, nil
}

// storedKey accepts value as an existing storage key. Keys missing from
// storage are kept but reported.
func (r *loadRun) storedKey(folder, key string) (string, error) {
	if err := storage.ValidateUpload(folder, key); err != nil {
		return "", err
	}
	ok, err := r.loader.Media.Exists(r.ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", key, err)
	}
	if !ok {
		log.Printf("Media %s is not in storage", key)
		r.summary.Missing++
	}
	return key, nil
}
