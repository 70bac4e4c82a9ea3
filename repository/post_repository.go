package repository

import (
	"context"

	"github.com/media-blog/api-go/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Nil fields impose no constraint and set
// fields are combined with AND.
type PostFilter struct {
	GroupID    *uint
	CategoryID *uint
	// Duration matches the duration value in minutes, not the Duration row ID.
	Duration *int
}

// Scope applies the filter to a query over the posts table.
func (f PostFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.GroupID != nil {
		db = db.Where("posts.group_id = ?", *f.GroupID)
	}
	if f.CategoryID != nil {
		db = db.Where("posts.category_id = ?", *f.CategoryID)
	}
	if f.Duration != nil {
		db = db.Joins("JOIN durations ON durations.id = posts.duration_id").
			Where("durations.value = ?", *f.Duration)
	}
	return db
}

func (f PostFilter) attributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if f.GroupID != nil {
		attrs = append(attrs, attribute.Int("filter.group", int(*f.GroupID)))
	}
	if f.CategoryID != nil {
		attrs = append(attrs, attribute.Int("filter.category", int(*f.CategoryID)))
	}
	if f.Duration != nil {
		attrs = append(attrs, attribute.Int("filter.duration", *f.Duration))
	}
	return attrs
}

// PostRepository defines the read operations over posts
type PostRepository interface {
	List(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Random(ctx context.Context) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
}

// GormPostRepository implements PostRepository using GORM
type GormPostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &GormPostRepository{db: db}
}

// withRelations loads everything the detail representation needs.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Duration").Preload("Links", func(db *gorm.DB) *gorm.DB {
		return db.Order("links.id ASC")
	})
}

// List returns one page of matching posts in insertion order and the total
// number of matches.
func (r *GormPostRepository) List(ctx context.Context, filter PostFilter, offset, limit int) (posts []models.Post, total int64, err error) {
	ctx, span := startSpan(ctx, "PostRepository.List", filter.attributes()...)
	defer func() { endSpan(span, err) }()

	db := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(filter.Scope)
	if err = db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []models.Post{}, 0, nil
	}

	err = r.db.WithContext(ctx).
		Scopes(filter.Scope, withRelations).
		Order("posts.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	span.SetAttributes(attribute.Int64("posts.total", total))
	return posts, total, nil
}

// FindByID finds a post by its ID
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostRepository.FindByID", attribute.Int("post.id", int(id)))
	defer func() { endSpan(span, err) }()

	var p models.Post
	if err = r.db.WithContext(ctx).Scopes(withRelations).First(&p, id).Error; err != nil {
		err = translate(err)
		return nil, err
	}
	return &p, nil
}

// Random draws one post uniformly at random from the whole collection on
// every call.
func (r *GormPostRepository) Random(ctx context.Context) (post *models.Post, err error) {
	ctx, span := startSpan(ctx, "PostRepository.Random")
	defer func() { endSpan(span, err) }()

	var p models.Post
	if err = r.db.WithContext(ctx).Scopes(withRelations).Order("RANDOM()").Take(&p).Error; err != nil {
		err = translate(err)
		return nil, err
	}
	return &p, nil
}

// Create adds a post along with its link associations
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, span := startSpan(ctx, "PostRepository.Create")
	defer func() { endSpan(span, err) }()

	err = r.db.WithContext(ctx).Omit("Group", "Category", "Duration", "Links.*").Create(post).Error
	return err
}
