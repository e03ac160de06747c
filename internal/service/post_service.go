package service

import (
	"context"

	"commons/internal/models"
	"commons/internal/pagination"
	"commons/internal/repository"
)

const (
	maxPostTitleLen   = 300
	maxPostContentLen = 50000

	// DefaultPostPageSize is used when the client does not ask for a limit.
	DefaultPostPageSize = 5
)

type PostService struct {
	postRepo      repository.PostRepository
	categoryRepo  repository.CategoryRepository
	communityRepo repository.CommunityRepository
	memberships   *MembershipService
}

type CreatePostInput struct {
	UserID      uint
	CommunityID uint
	CategoryID  uint
	Title       string
	Content     string
}

type ListPostsInput struct {
	CommunityID uint
	CategoryID  *uint
	Limit       int
	Page        int
}

type UpdatePostInput struct {
	UserID      uint
	CommunityID uint
	PostID      uint
	Title       string
	Content     string
}

type DeletePostInput struct {
	UserID      uint
	CommunityID uint
	PostID      uint
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	communityRepo repository.CommunityRepository,
	memberships *MembershipService,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		categoryRepo:  categoryRepo,
		communityRepo: communityRepo,
		memberships:   memberships,
	}
}

// ListPosts returns one page of posts, scoped either to a single category or
// to the whole community, newest first, plus the total page count. An empty
// listing is NOT_FOUND.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, int, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPostPageSize
	}
	page := in.Page
	if page < 1 {
		page = 1
	}

	var categoryIDs []uint
	if in.CategoryID != nil {
		category, err := s.categoryRepo.GetForCommunity(ctx, *in.CategoryID, in.CommunityID)
		if err != nil {
			return nil, 0, notFoundOrStore(err, "Category", *in.CategoryID)
		}
		categoryIDs = []uint{category.ID}
	} else {
		if _, err := s.communityRepo.GetByID(ctx, in.CommunityID); err != nil {
			return nil, 0, notFoundOrStore(err, "Community", in.CommunityID)
		}
		ids, err := s.categoryRepo.IDsByCommunity(ctx, in.CommunityID)
		if err != nil {
			return nil, 0, models.NewStoreError(err)
		}
		categoryIDs = ids
	}

	count, err := s.postRepo.CountByCategories(ctx, categoryIDs)
	if err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	if count == 0 {
		return nil, 0, models.NewNotFoundMessageError("No posts found")
	}

	window := pagination.Paginate(count, limit, page)
	posts, err := s.postRepo.ListByCategories(ctx, in.CommunityID, categoryIDs, window.Limit, window.Offset)
	if err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	return posts, window.TotalPages, nil
}

// GetPost fetches a single post with its author's role badge and reactions.
func (s *PostService) GetPost(ctx context.Context, communityID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetDetailed(ctx, postID, communityID)
	if err != nil {
		return nil, notFoundOrStore(err, "Post", postID)
	}
	if _, err := s.categoryRepo.GetForCommunity(ctx, post.CategoryID, communityID); err != nil {
		return nil, notFoundOrStore(err, "Post", postID)
	}
	return post, nil
}

// GetPostContent returns just the post body, for clients that already hold
// the listing metadata.
func (s *PostService) GetPostContent(ctx context.Context, communityID, postID uint) (string, error) {
	if _, err := s.GetPost(ctx, communityID, postID); err != nil {
		return "", err
	}
	content, err := s.postRepo.ContentByID(ctx, postID)
	if err != nil {
		return "", notFoundOrStore(err, "Post", postID)
	}
	return content, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxPostTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	if _, err := s.categoryRepo.GetForCommunity(ctx, in.CategoryID, in.CommunityID); err != nil {
		return nil, notFoundOrStore(err, "Category", in.CategoryID)
	}

	userID := in.UserID
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     &userID,
		CategoryID: in.CategoryID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewStoreError(err)
	}
	return s.GetPost(ctx, in.CommunityID, post.ID)
}

// UpdatePost lets the author amend title and content. Empty fields are left
// untouched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, notFoundOrStore(err, "Post", in.PostID)
	}
	if post.UserID == nil || *post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != "" {
		if len(in.Title) > maxPostTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxPostContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewStoreError(err)
	}
	return s.GetPost(ctx, in.CommunityID, post.ID)
}

// DeletePost removes a post. The author can always delete their own; anyone
// who can manage the community can delete any post in it.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return notFoundOrStore(err, "Post", in.PostID)
	}

	if post.UserID == nil || *post.UserID != in.UserID {
		allowed, err := s.memberships.CanManage(ctx, in.UserID, in.CommunityID)
		if err != nil {
			return err
		}
		if !allowed {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return notFoundOrStore(err, "Post", in.PostID)
	}
	return nil
}
