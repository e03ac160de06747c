package service

import (
	"context"

	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/roles"
	"commons/internal/validation"
)

type CommunityService struct {
	communityRepo  repository.CommunityRepository
	membershipRepo repository.MembershipRepository
	memberships    *MembershipService
	registry       *roles.Registry
}

type CreateCommunityInput struct {
	ActorID     uint
	Name        string
	Description string
	Picture     string
}

type UpdateCommunityInput struct {
	CommunityID uint
	Name        string
	Description string
	Picture     string
}

type DeleteCommunityInput struct {
	ActorID     uint
	CommunityID uint
}

func NewCommunityService(
	communityRepo repository.CommunityRepository,
	membershipRepo repository.MembershipRepository,
	memberships *MembershipService,
	registry *roles.Registry,
) *CommunityService {
	return &CommunityService{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		memberships:    memberships,
		registry:       registry,
	}
}

func (s *CommunityService) ListCommunities(ctx context.Context) ([]*models.Community, error) {
	communities, err := s.communityRepo.List(ctx)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return communities, nil
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOrStore(err, "Community", id)
	}
	return community, nil
}

// CreateCommunity registers a community and makes the creator its founder.
func (s *CommunityService) CreateCommunity(ctx context.Context, in CreateCommunityInput) (*models.Community, error) {
	if err := validation.ValidateCommunityName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if len(in.Description) > models.MaxCommunityDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 1000 characters)")
	}

	exists, err := s.communityRepo.NameExists(ctx, in.Name, 0)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if exists {
		return nil, models.NewConflictError("Community name already in use")
	}

	community := &models.Community{
		Name:        in.Name,
		Description: in.Description,
		Picture:     in.Picture,
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, models.NewStoreError(err)
	}

	founder, ok := s.registry.Resolve(models.RoleCommunityFounder)
	if !ok {
		return nil, models.NewStoreError(errRoleCatalogMissing)
	}
	if err := s.membershipRepo.Assign(ctx, &models.Membership{
		UserID:      in.ActorID,
		CommunityID: community.ID,
		RoleID:      founder.ID,
	}); err != nil {
		return nil, models.NewStoreError(err)
	}

	return community, nil
}

// CheckName reports whether a community name is taken. ignoreID excludes a
// community from the check so renames don't collide with themselves.
func (s *CommunityService) CheckName(ctx context.Context, name string, ignoreID uint) (bool, error) {
	if name == "" {
		return false, models.NewValidationError("name is required")
	}
	exists, err := s.communityRepo.NameExists(ctx, name, ignoreID)
	if err != nil {
		return false, models.NewStoreError(err)
	}
	return exists, nil
}

// UpdateCommunity applies a partial update. Empty fields are left untouched.
func (s *CommunityService) UpdateCommunity(ctx context.Context, in UpdateCommunityInput) (*models.Community, error) {
	community, err := s.communityRepo.GetByID(ctx, in.CommunityID)
	if err != nil {
		return nil, notFoundOrStore(err, "Community", in.CommunityID)
	}

	if in.Name != "" && in.Name != community.Name {
		if err := validation.ValidateCommunityName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		exists, err := s.communityRepo.NameExists(ctx, in.Name, community.ID)
		if err != nil {
			return nil, models.NewStoreError(err)
		}
		if exists {
			return nil, models.NewConflictError("Community name already in use")
		}
		community.Name = in.Name
	}
	if in.Description != "" {
		if len(in.Description) > models.MaxCommunityDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 1000 characters)")
		}
		community.Description = in.Description
	}
	if in.Picture != "" {
		community.Picture = in.Picture
	}

	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, models.NewStoreError(err)
	}
	return community, nil
}

// ChangePicture swaps the community image without touching anything else.
func (s *CommunityService) ChangePicture(ctx context.Context, communityID uint, picture string) (*models.Community, error) {
	if picture == "" {
		return nil, models.NewValidationError("picture is required")
	}
	community, err := s.communityRepo.GetByID(ctx, communityID)
	if err != nil {
		return nil, notFoundOrStore(err, "Community", communityID)
	}
	community.Picture = picture
	if err := s.communityRepo.Update(ctx, community); err != nil {
		return nil, models.NewStoreError(err)
	}
	return community, nil
}

// DeleteCommunity removes the community. Only founders, system administrators
// and platform admins may do this; everyone else gets FORBIDDEN and no rows
// change.
func (s *CommunityService) DeleteCommunity(ctx context.Context, in DeleteCommunityInput) error {
	if _, err := s.communityRepo.GetByID(ctx, in.CommunityID); err != nil {
		return notFoundOrStore(err, "Community", in.CommunityID)
	}

	allowed, err := s.memberships.CanManage(ctx, in.ActorID, in.CommunityID)
	if err != nil {
		return err
	}
	if !allowed {
		return models.NewForbiddenError("Only a community founder or system administrator can delete a community")
	}

	if err := s.communityRepo.Delete(ctx, in.CommunityID); err != nil {
		return notFoundOrStore(err, "Community", in.CommunityID)
	}
	return nil
}
