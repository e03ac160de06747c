package service

import (
	"context"
	"testing"

	"commons/internal/models"
	"commons/internal/roles"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Stub repositories with overridable funcs, one per repository interface.
// The noop constructors return permissive defaults so tests only override
// what they care about.

type communityRepoStub struct {
	createFn     func(context.Context, *models.Community) error
	getByIDFn    func(context.Context, uint) (*models.Community, error)
	listFn       func(context.Context) ([]*models.Community, error)
	nameExistsFn func(context.Context, string, uint) (bool, error)
	updateFn     func(context.Context, *models.Community) error
	deleteFn     func(context.Context, uint) error
}

func (s *communityRepoStub) Create(ctx context.Context, c *models.Community) error {
	return s.createFn(ctx, c)
}
func (s *communityRepoStub) GetByID(ctx context.Context, id uint) (*models.Community, error) {
	return s.getByIDFn(ctx, id)
}
func (s *communityRepoStub) List(ctx context.Context) ([]*models.Community, error) {
	return s.listFn(ctx)
}
func (s *communityRepoStub) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	return s.nameExistsFn(ctx, name, excludeID)
}
func (s *communityRepoStub) Update(ctx context.Context, c *models.Community) error {
	return s.updateFn(ctx, c)
}
func (s *communityRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommunityRepo() *communityRepoStub {
	return &communityRepoStub{
		createFn: func(_ context.Context, c *models.Community) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Community, error) {
			return &models.Community{ID: id, Name: "gophers"}, nil
		},
		listFn:       func(_ context.Context) ([]*models.Community, error) { return nil, nil },
		nameExistsFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		updateFn:     func(_ context.Context, _ *models.Community) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

type categoryRepoStub struct {
	createFn          func(context.Context, *models.Category) error
	getByIDFn         func(context.Context, uint) (*models.Category, error)
	getForCommunityFn func(context.Context, uint, uint) (*models.Category, error)
	listByCommunityFn func(context.Context, uint, int, int) ([]*models.Category, error)
	countFn           func(context.Context, uint) (int64, error)
	idsFn             func(context.Context, uint) ([]uint, error)
	nameKeyExistsFn   func(context.Context, uint, string, uint) (bool, error)
	updateFn          func(context.Context, *models.Category) error
	deleteFn          func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, c *models.Category) error {
	return s.createFn(ctx, c)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetForCommunity(ctx context.Context, id, communityID uint) (*models.Category, error) {
	return s.getForCommunityFn(ctx, id, communityID)
}
func (s *categoryRepoStub) ListByCommunity(ctx context.Context, communityID uint, limit, offset int) ([]*models.Category, error) {
	return s.listByCommunityFn(ctx, communityID, limit, offset)
}
func (s *categoryRepoStub) CountByCommunity(ctx context.Context, communityID uint) (int64, error) {
	return s.countFn(ctx, communityID)
}
func (s *categoryRepoStub) IDsByCommunity(ctx context.Context, communityID uint) ([]uint, error) {
	return s.idsFn(ctx, communityID)
}
func (s *categoryRepoStub) NameKeyExists(ctx context.Context, communityID uint, nameKey string, excludeID uint) (bool, error) {
	return s.nameKeyExistsFn(ctx, communityID, nameKey, excludeID)
}
func (s *categoryRepoStub) Update(ctx context.Context, c *models.Category) error {
	return s.updateFn(ctx, c)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, c *models.Category) error {
			c.ID = 10
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "General", NameKey: "general"}, nil
		},
		getForCommunityFn: func(_ context.Context, id, communityID uint) (*models.Category, error) {
			cid := communityID
			return &models.Category{ID: id, Name: "General", NameKey: "general", CommunityID: &cid}, nil
		},
		listByCommunityFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Category, error) {
			return nil, nil
		},
		countFn:         func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		idsFn:           func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		nameKeyExistsFn: func(_ context.Context, _ uint, _ string, _ uint) (bool, error) { return false, nil },
		updateFn:        func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	getDetailedFn func(context.Context, uint, uint) (*models.Post, error)
	contentFn     func(context.Context, uint) (string, error)
	listFn        func(context.Context, uint, []uint, int, int) ([]*models.Post, error)
	countFn       func(context.Context, []uint) (int64, error)
	reassignFn    func(context.Context, uint, uint) (int64, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, p *models.Post) error {
	return s.createFn(ctx, p)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetDetailed(ctx context.Context, id, communityID uint) (*models.Post, error) {
	return s.getDetailedFn(ctx, id, communityID)
}
func (s *postRepoStub) ContentByID(ctx context.Context, id uint) (string, error) {
	return s.contentFn(ctx, id)
}
func (s *postRepoStub) ListByCategories(ctx context.Context, communityID uint, categoryIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, communityID, categoryIDs, limit, offset)
}
func (s *postRepoStub) CountByCategories(ctx context.Context, categoryIDs []uint) (int64, error) {
	return s.countFn(ctx, categoryIDs)
}
func (s *postRepoStub) Reassign(ctx context.Context, from, to uint) (int64, error) {
	return s.reassignFn(ctx, from, to)
}
func (s *postRepoStub) Update(ctx context.Context, p *models.Post) error {
	return s.updateFn(ctx, p)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	author := uint(1)
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 100
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "t", Content: "c", UserID: &author, CategoryID: 10}, nil
		},
		getDetailedFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "t", Content: "c", UserID: &author, CategoryID: 10}, nil
		},
		contentFn:  func(_ context.Context, _ uint) (string, error) { return "c", nil },
		listFn:     func(_ context.Context, _ uint, _ []uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countFn:    func(_ context.Context, _ []uint) (int64, error) { return 0, nil },
		reassignFn: func(_ context.Context, _, _ uint) (int64, error) { return 0, nil },
		updateFn:   func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn  func(context.Context, *models.Comment) error
	getByIDFn func(context.Context, uint) (*models.Comment, error)
	listFn    func(context.Context, uint, uint) ([]*models.Comment, error)
	countFn   func(context.Context, uint) (int64, error)
	updateFn  func(context.Context, *models.Comment) error
	deleteFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID, communityID uint) ([]*models.Comment, error) {
	return s.listFn(ctx, postID, communityID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, c *models.Comment) error {
	return s.updateFn(ctx, c)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	author := uint(1)
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, Content: "hi", PostID: 1, UserID: &author}, nil
		},
		listFn:   func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		countFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type membershipRepoStub struct {
	getRoleFn func(context.Context, uint, uint) (*models.Role, error)
	assignFn  func(context.Context, *models.Membership) error
	removeFn  func(context.Context, uint, uint) error
	rosterFn  func(context.Context, uint) ([]models.RosterEntry, error)
}

func (s *membershipRepoStub) GetRole(ctx context.Context, userID, communityID uint) (*models.Role, error) {
	return s.getRoleFn(ctx, userID, communityID)
}
func (s *membershipRepoStub) Assign(ctx context.Context, m *models.Membership) error {
	return s.assignFn(ctx, m)
}
func (s *membershipRepoStub) Remove(ctx context.Context, userID, communityID uint) error {
	return s.removeFn(ctx, userID, communityID)
}
func (s *membershipRepoStub) Roster(ctx context.Context, communityID uint) ([]models.RosterEntry, error) {
	return s.rosterFn(ctx, communityID)
}

func noopMembershipRepo() *membershipRepoStub {
	return &membershipRepoStub{
		getRoleFn: func(_ context.Context, _, _ uint) (*models.Role, error) {
			return nil, gorm.ErrRecordNotFound
		},
		assignFn: func(_ context.Context, _ *models.Membership) error { return nil },
		removeFn: func(_ context.Context, _, _ uint) error { return nil },
		rosterFn: func(_ context.Context, _ uint) ([]models.RosterEntry, error) { return nil, nil },
	}
}

type reactionRepoStub struct {
	togglePostFn    func(context.Context, uint, uint, string) (models.ReactionOutcome, error)
	toggleCommentFn func(context.Context, uint, uint, string) (models.ReactionOutcome, error)
}

func (s *reactionRepoStub) TogglePost(ctx context.Context, postID, userID uint, reactionType string) (models.ReactionOutcome, error) {
	return s.togglePostFn(ctx, postID, userID, reactionType)
}
func (s *reactionRepoStub) ToggleComment(ctx context.Context, commentID, userID uint, reactionType string) (models.ReactionOutcome, error) {
	return s.toggleCommentFn(ctx, commentID, userID, reactionType)
}

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "ada"}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
}

// testRegistry is the seeded role catalog as tests see it.
func testRegistry() *roles.Registry {
	return roles.NewRegistry([]models.Role{
		{ID: 1, Name: models.RoleCommunityFounder, DisplayName: "Community Founder"},
		{ID: 2, Name: models.RoleSystemAdministrator, DisplayName: "System Administrator"},
		{ID: 3, Name: models.RoleModerator, DisplayName: "Moderator"},
		{ID: 4, Name: models.RoleMember, DisplayName: "Member"},
	})
}

func newTestMembershipService(
	membershipRepo *membershipRepoStub,
	communityRepo *communityRepoStub,
	userRepo *userRepoStub,
) *MembershipService {
	return NewMembershipService(membershipRepo, communityRepo, userRepo, testRegistry())
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeConflict)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}
