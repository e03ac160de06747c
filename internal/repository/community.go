// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"commons/internal/cache"
	"commons/internal/config"
	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
)

const memberCountSelect = "communities.*, " +
	"(SELECT COUNT(*) FROM memberships WHERE memberships.community_id = communities.id) as member_count"

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	Create(ctx context.Context, community *models.Community) error
	GetByID(ctx context.Context, id uint) (*models.Community, error)
	List(ctx context.Context) ([]*models.Community, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, community *models.Community) error
	Delete(ctx context.Context, id uint) error
}

// communityRepository implements CommunityRepository
type communityRepository struct {
	db            *gorm.DB
	cascadePolicy string
}

// NewCommunityRepository creates a new community repository. cascadePolicy
// controls what Delete does with the categories under the community.
func NewCommunityRepository(db *gorm.DB, cascadePolicy string) CommunityRepository {
	return &communityRepository{db: db, cascadePolicy: cascadePolicy}
}

func (r *communityRepository) Create(ctx context.Context, community *models.Community) error {
	err := r.db.WithContext(ctx).Create(community).Error
	if err == nil {
		cache.Invalidate(ctx, cache.CommunityListKey)
	}
	return err
}

func (r *communityRepository) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	var community models.Community
	err := cache.Aside(ctx, cache.CommunityKey(id), &community, cache.CommunityTTL, func() error {
		return r.db.WithContext(ctx).
			Select(memberCountSelect).
			First(&community, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) List(ctx context.Context) ([]*models.Community, error) {
	done := observability.TrackQuery("list", "communities")
	defer done()

	var communities []*models.Community
	err := r.db.WithContext(ctx).
		Select(memberCountSelect).
		Order("communities.name ASC").
		Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepository) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.Community{}).
		Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *communityRepository) Update(ctx context.Context, community *models.Community) error {
	if err := r.db.WithContext(ctx).Save(community).Error; err != nil {
		return err
	}
	cache.InvalidateCommunity(ctx, community.ID)
	return nil
}

// Delete removes the community and everything hanging off it in one
// transaction. Under the set_null policy categories are orphaned instead of
// removed and keep their posts.
func (r *communityRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categoryIDs []uint
		if err := tx.Model(&models.Category{}).
			Where("community_id = ?", id).
			Pluck("id", &categoryIDs).Error; err != nil {
			return err
		}

		if len(categoryIDs) > 0 {
			if r.cascadePolicy == config.CascadePolicySetNull {
				if err := tx.Model(&models.Category{}).
					Where("id IN ?", categoryIDs).
					Update("community_id", nil).Error; err != nil {
					return err
				}
			} else if err := r.deleteCategoryContent(tx, categoryIDs); err != nil {
				return err
			}
		}

		if err := tx.Where("community_id = ?", id).
			Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Community{}, id)
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
	cache.InvalidateCommunity(ctx, id)
	cache.InvalidateRoster(ctx, id)
	return nil
}

// deleteCategoryContent removes posts, comments and reactions under the given
// categories, leaf tables first so no orphan rows survive a partial failure.
func (r *communityRepository) deleteCategoryContent(tx *gorm.DB, categoryIDs []uint) error {
	var postIDs []uint
	if err := tx.Model(&models.Post{}).
		Where("category_id IN ?", categoryIDs).
		Pluck("id", &postIDs).Error; err != nil {
		return err
	}

	if len(postIDs) > 0 {
		commentIDs := tx.Model(&models.Comment{}).
			Select("id").
			Where("post_id IN ?", postIDs)
		if err := tx.Where("comment_id IN (?)", commentIDs).
			Delete(&models.CommentReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", postIDs).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", postIDs).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", postIDs).
			Delete(&models.Post{}).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", categoryIDs).Delete(&models.Category{}).Error
}
