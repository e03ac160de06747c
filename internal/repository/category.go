package repository

import (
	"context"

	"commons/internal/models"

	"gorm.io/gorm"
)

const postCountSelect = "categories.*, " +
	"(SELECT COUNT(*) FROM posts WHERE posts.category_id = categories.id) as post_count"

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetForCommunity(ctx context.Context, id, communityID uint) (*models.Category, error)
	ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]*models.Category, error)
	CountByCommunity(ctx context.Context, communityID uint) (int64, error)
	IDsByCommunity(ctx context.Context, communityID uint) ([]uint, error)
	NameKeyExists(ctx context.Context, communityID uint, nameKey string, excludeID uint) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(postCountSelect).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetForCommunity(ctx context.Context, id, communityID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(postCountSelect).
		Where("categories.community_id = ?", communityID).
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]*models.Category, error) {
	var categories []*models.Category
	query := r.db.WithContext(ctx).
		Select(postCountSelect).
		Where("categories.community_id = ?", communityID).
		Order("categories.created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountByCommunity(ctx context.Context, communityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func (r *categoryRepository) IDsByCommunity(ctx context.Context, communityID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("community_id = ?", communityID).
		Pluck("id", &ids).Error
	return ids, err
}

// NameKeyExists reports whether the community already has a category with the
// given lowercased name. excludeID skips the category being renamed.
func (r *categoryRepository) NameKeyExists(ctx context.Context, communityID uint, nameKey string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("community_id = ? AND name_key = ?", communityID, nameKey)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
