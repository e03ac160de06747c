package repository

import (
	"context"
	"errors"

	"commons/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction toggle operations
type ReactionRepository interface {
	TogglePost(ctx context.Context, postID, userID uint, reactionType string) (models.ReactionOutcome, error)
	ToggleComment(ctx context.Context, commentID, userID uint, reactionType string) (models.ReactionOutcome, error)
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// TogglePost cycles the user's reaction on a post: absent creates, same type
// removes, different type updates in place. The insert goes first with ON
// CONFLICT DO NOTHING so two concurrent first reactions cannot both create a
// row; the unique (post_id, user_id) index backs the conflict target.
func (r *reactionRepository) TogglePost(ctx context.Context, postID, userID uint, reactionType string) (models.ReactionOutcome, error) {
	var outcome models.ReactionOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reaction := models.PostReaction{
			PostID:       postID,
			UserID:       userID,
			ReactionType: reactionType,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&reaction)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 1 {
			outcome = models.ReactionCreated
			return nil
		}

		var existing models.PostReaction
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// lost a race with a concurrent remove, report it as ours
				outcome = models.ReactionRemoved
				return nil
			}
			return err
		}
		if existing.ReactionType == reactionType {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			outcome = models.ReactionRemoved
			return nil
		}
		if err := tx.Model(&existing).
			Update("reaction_type", reactionType).Error; err != nil {
			return err
		}
		outcome = models.ReactionUpdated
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// ToggleComment mirrors TogglePost for comment reactions.
func (r *reactionRepository) ToggleComment(ctx context.Context, commentID, userID uint, reactionType string) (models.ReactionOutcome, error) {
	var outcome models.ReactionOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reaction := models.CommentReaction{
			CommentID:    commentID,
			UserID:       userID,
			ReactionType: reactionType,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&reaction)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 1 {
			outcome = models.ReactionCreated
			return nil
		}

		var existing models.CommentReaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// lost a race with a concurrent remove, report it as ours
				outcome = models.ReactionRemoved
				return nil
			}
			return err
		}
		if existing.ReactionType == reactionType {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			outcome = models.ReactionRemoved
			return nil
		}
		if err := tx.Model(&existing).
			Update("reaction_type", reactionType).Error; err != nil {
			return err
		}
		outcome = models.ReactionUpdated
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}
