package service

import (
	"context"

	"commons/internal/models"
	"commons/internal/observability"
	"commons/internal/repository"
)

const maxReactionTypeLen = 30

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
	}
}

// TogglePostReaction cycles the user's reaction on a post. The outcome tells
// the handler which response to send: created, updated or removed.
func (s *ReactionService) TogglePostReaction(ctx context.Context, userID, postID uint, reactionType string) (models.ReactionOutcome, error) {
	if err := validateReactionType(reactionType); err != nil {
		return "", err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return "", notFoundOrStore(err, "Post", postID)
	}

	outcome, err := s.reactionRepo.TogglePost(ctx, postID, userID, reactionType)
	if err != nil {
		return "", models.NewStoreError(err)
	}
	observability.ReactionToggles.WithLabelValues("post", string(outcome)).Inc()
	return outcome, nil
}

// ToggleCommentReaction mirrors TogglePostReaction for comments.
func (s *ReactionService) ToggleCommentReaction(ctx context.Context, userID, commentID uint, reactionType string) (models.ReactionOutcome, error) {
	if err := validateReactionType(reactionType); err != nil {
		return "", err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return "", notFoundOrStore(err, "Comment", commentID)
	}

	outcome, err := s.reactionRepo.ToggleComment(ctx, commentID, userID, reactionType)
	if err != nil {
		return "", models.NewStoreError(err)
	}
	observability.ReactionToggles.WithLabelValues("comment", string(outcome)).Inc()
	return outcome, nil
}

func validateReactionType(reactionType string) error {
	if reactionType == "" {
		return models.NewValidationError("reaction_type is required")
	}
	if len(reactionType) > maxReactionTypeLen {
		return models.NewValidationError("reaction_type too long (max 30 characters)")
	}
	return nil
}
