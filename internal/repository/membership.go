package repository

import (
	"context"

	"commons/internal/cache"
	"commons/internal/models"
	"commons/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository defines the interface for membership data operations
type MembershipRepository interface {
	GetRole(ctx context.Context, userID, communityID uint) (*models.Role, error)
	Assign(ctx context.Context, membership *models.Membership) error
	Remove(ctx context.Context, userID, communityID uint) error
	Roster(ctx context.Context, communityID uint) ([]models.RosterEntry, error)
}

// membershipRepository implements MembershipRepository
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetRole(ctx context.Context, userID, communityID uint) (*models.Role, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("user_id = ? AND community_id = ?", userID, communityID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	if membership.Role == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return membership.Role, nil
}

// Assign upserts on the (user_id, community_id) pair so repeating an
// assignment never produces a duplicate membership row.
func (r *membershipRepository) Assign(ctx context.Context, membership *models.Membership) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "community_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id", "updated_at"}),
		}).
		Create(membership).Error
	if err == nil {
		cache.InvalidateRoster(ctx, membership.CommunityID)
		cache.Invalidate(ctx, cache.CommunityKey(membership.CommunityID))
		cache.Invalidate(ctx, cache.CommunityListKey)
	}
	return err
}

func (r *membershipRepository) Remove(ctx context.Context, userID, communityID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateRoster(ctx, communityID)
	cache.Invalidate(ctx, cache.CommunityKey(communityID))
	cache.Invalidate(ctx, cache.CommunityListKey)
	return nil
}

// Roster lists every member of the community with their role name, NULL role
// columns included for memberships pointing at a deleted role.
func (r *membershipRepository) Roster(ctx context.Context, communityID uint) ([]models.RosterEntry, error) {
	done := observability.TrackQuery("roster", "memberships")
	defer done()

	var entries []models.RosterEntry
	err := cache.Aside(ctx, cache.RosterKey(communityID), &entries, cache.RosterTTL, func() error {
		return r.db.WithContext(ctx).
			Table("memberships").
			Select("users.id as user_id, users.username, users.picture, "+
				"roles.name as role_name, roles.display_name as role_display_name").
			Joins("JOIN users ON users.id = memberships.user_id").
			Joins("LEFT JOIN roles ON roles.id = memberships.role_id").
			Where("memberships.community_id = ?", communityID).
			Order("users.username ASC").
			Scan(&entries).Error
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
