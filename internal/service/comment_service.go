package service

import (
	"context"
	"strings"

	"commons/internal/models"
	"commons/internal/repository"
)

const maxCommentLen = 10000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	memberships *MembershipService
}

type CreateCommentInput struct {
	UserID      uint
	CommunityID uint
	PostID      uint
	Content     string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID      uint
	CommunityID uint
	CommentID   uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	memberships *MembershipService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		memberships: memberships,
	}
}

// ListComments returns every comment on the post, oldest first, with the
// authors' role badges resolved for the enclosing community.
func (s *CommentService) ListComments(ctx context.Context, communityID, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOrStore(err, "Post", postID)
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, communityID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, notFoundOrStore(err, "Post", in.PostID)
	}

	userID := in.UserID
	comment := &models.Comment{
		Content: content,
		PostID:  in.PostID,
		UserID:  &userID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewStoreError(err)
	}
	return comment, nil
}

// UpdateComment lets the author amend their comment.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, notFoundOrStore(err, "Comment", in.CommentID)
	}
	if comment.UserID == nil || *comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewStoreError(err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Authors delete their own; community
// managers can delete any comment in their community.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return notFoundOrStore(err, "Comment", in.CommentID)
	}

	if comment.UserID == nil || *comment.UserID != in.UserID {
		allowed, err := s.memberships.CanManage(ctx, in.UserID, in.CommunityID)
		if err != nil {
			return err
		}
		if !allowed {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return notFoundOrStore(err, "Comment", in.CommentID)
	}
	return nil
}
