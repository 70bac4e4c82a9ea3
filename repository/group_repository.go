package repository

import (
	"context"

	"github.com/media-blog/api-go/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// GroupRepository defines the read operations over groups
type GroupRepository interface {
	List(ctx context.Context, offset, limit int) ([]models.Group, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Group, error)
}

type GormGroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// List returns groups alphabetically by name.
func (r *GormGroupRepository) List(ctx context.Context, offset, limit int) (groups []models.Group, total int64, err error) {
	ctx, span := startSpan(ctx, "GroupRepository.List")
	defer func() { endSpan(span, err) }()

	db := r.db.WithContext(ctx)
	if err = db.Model(&models.Group{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	groups = []models.Group{}
	err = db.Order("name ASC").Order("id ASC").Offset(offset).Limit(limit).Find(&groups).Error
	return groups, total, err
}

func (r *GormGroupRepository) FindByID(ctx context.Context, id uint) (group *models.Group, err error) {
	ctx, span := startSpan(ctx, "GroupRepository.FindByID", attribute.Int("group.id", int(id)))
	defer func() { endSpan(span, err) }()

	var g models.Group
	if err = r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		err = translate(err)
		return nil, err
	}
	return &g, nil
}
