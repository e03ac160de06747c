package repository

import (
	"context"

	"commons/internal/cache"
	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetDetailed(ctx context.Context, id, communityID uint) (*models.Post, error)
	ContentByID(ctx context.Context, id uint) (string, error)
	ListByCategories(ctx context.Context, communityID uint, categoryIDs []uint, limit, offset int) ([]*models.Post, error)
	CountByCategories(ctx context.Context, categoryIDs []uint) (int64, error)
	Reassign(ctx context.Context, fromCategoryID, toCategoryID uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetDetailed(ctx context.Context, id, communityID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyAuthorRole(r.db.WithContext(ctx), communityID).
		Preload("User").
		Preload("Reactions").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ContentByID(ctx context.Context, id uint) (string, error) {
	var content string
	err := cache.Aside(ctx, cache.PostContentKey(id), &content, cache.PostContentTTL, func() error {
		var row struct{ Content string }
		result := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Select("content").
			Where("id = ?", id).
			Limit(1).
			Find(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		content = row.Content
		return nil
	})
	return content, err
}

func (r *postRepository) ListByCategories(ctx context.Context, communityID uint, categoryIDs []uint, limit, offset int) ([]*models.Post, error) {
	done := observability.TrackQuery("list", "posts")
	defer done()

	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	query := r.applyAuthorRole(r.db.WithContext(ctx), communityID).
		Preload("User").
		Preload("Reactions").
		Where("posts.category_id IN ?", categoryIDs).
		Order("posts.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByCategories(ctx context.Context, categoryIDs []uint) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("category_id IN ?", categoryIDs).
		Count(&count).Error
	return count, err
}

// Reassign moves every post in fromCategoryID to toCategoryID as a single
// set-based UPDATE and returns the number of posts moved.
func (r *postRepository) Reassign(ctx context.Context, fromCategoryID, toCategoryID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID)
	return result.RowsAffected, result.Error
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePostContent(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).
			Select("id").
			Where("post_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).
			Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePostContent(ctx, id)
	return nil
}

// applyAuthorRole joins the author's membership in the enclosing community so
// listings can show the role badge without a query per post. Users with no
// membership keep NULL role columns.
func (r *postRepository) applyAuthorRole(db *gorm.DB, communityID uint) *gorm.DB {
	return db.
		Select("posts.*, roles.name as author_role_name, roles.display_name as author_role_display_name").
		Joins("LEFT JOIN memberships ON memberships.user_id = posts.user_id AND memberships.community_id = ?", communityID).
		Joins("LEFT JOIN roles ON roles.id = memberships.role_id")
}
