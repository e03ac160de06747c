package service

import (
	"context"
	"strings"
	"testing"

	"commons/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCommentService(
	commentRepo *commentRepoStub,
	postRepo *postRepoStub,
	membershipRepo *membershipRepoStub,
) *CommentService {
	memberships := newTestMembershipService(membershipRepo, noopCommunityRepo(), noopUserRepo())
	return NewCommentService(commentRepo, postRepo, memberships)
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, CommunityID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("whitespace-only content", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, CommunityID: 1, PostID: 1, Content: "   \n\t ",
		})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, CommunityID: 1, PostID: 1,
			Content: strings.Repeat("x", maxCommentLen+1),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}
		svc := newTestCommentService(noopCommentRepo(), postRepo, noopMembershipRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, CommunityID: 1, PostID: 99, Content: "hi",
		})
		assertNotFoundError(t, err)
	})

	t.Run("creates and returns the comment", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID: 1, CommunityID: 1, PostID: 1, Content: "hello",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(42), comment.ID)
		assert.Equal(t, "hello", comment.Content)
	})
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-author cannot update", func(t *testing.T) {
		t.Parallel()
		author := uint(10)
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: &author}, nil
		}
		svc := newTestCommentService(commentRepo, noopPostRepo(), noopMembershipRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "new"})
		assertForbiddenError(t, err)
	})

	t.Run("author can update", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, CommentID: 1, Content: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", comment.Content)
	})
}

func TestCommentService_DeleteComment_Authorization(t *testing.T) {
	t.Parallel()

	otherAuthor := uint(10)

	t.Run("author can delete", func(t *testing.T) {
		t.Parallel()
		svc := newTestCommentService(noopCommentRepo(), noopPostRepo(), noopMembershipRepo())
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommunityID: 1, CommentID: 1})
		assert.NoError(t, err)
	})

	t.Run("plain member cannot delete another user's comment", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: &otherAuthor}, nil
		}
		membershipRepo := noopMembershipRepo()
		membershipRepo.getRoleFn = func(_ context.Context, _, _ uint) (*models.Role, error) {
			return &models.Role{Name: models.RoleMember}, nil
		}
		svc := newTestCommentService(commentRepo, noopPostRepo(), membershipRepo)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommunityID: 1, CommentID: 1})
		assertForbiddenError(t, err)
	})

	t.Run("system administrator can delete another user's comment", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, UserID: &otherAuthor}, nil
		}
		membershipRepo := noopMembershipRepo()
		membershipRepo.getRoleFn = func(_ context.Context, _, _ uint) (*models.Role, error) {
			return &models.Role{Name: models.RoleSystemAdministrator}, nil
		}
		svc := newTestCommentService(commentRepo, noopPostRepo(), membershipRepo)
		err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, CommunityID: 1, CommentID: 1})
		assert.NoError(t, err)
	})
}
