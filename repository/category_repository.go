package repository

import (
	"context"

	"github.com/media-blog/api-go/models"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// CategoryRepository defines the read operations over categories
type CategoryRepository interface {
	List(ctx context.Context, offset, limit int) ([]models.Category, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) List(ctx context.Context, offset, limit int) (categories []models.Category, total int64, err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.List")
	defer func() { endSpan(span, err) }()

	db := r.db.WithContext(ctx)
	if err = db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	categories = []models.Category{}
	err = db.Order("id ASC").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (category *models.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.FindByID", attribute.Int("category.id", int(id)))
	defer func() { endSpan(span, err) }()

	var c models.Category
	if err = r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		err = translate(err)
		return nil, err
	}
	return &c, nil
}
