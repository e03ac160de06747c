package service

import (
	"context"
	"errors"

	"commons/internal/models"
	"commons/internal/observability"
	"commons/internal/repository"
	"commons/internal/roles"

	"gorm.io/gorm"
)

type MembershipService struct {
	membershipRepo repository.MembershipRepository
	communityRepo  repository.CommunityRepository
	userRepo       repository.UserRepository
	registry       *roles.Registry
}

type AssignRoleInput struct {
	CommunityID uint
	UserID      uint
	RoleName    string
}

func NewMembershipService(
	membershipRepo repository.MembershipRepository,
	communityRepo repository.CommunityRepository,
	userRepo repository.UserRepository,
	registry *roles.Registry,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		communityRepo:  communityRepo,
		userRepo:       userRepo,
		registry:       registry,
	}
}

// AssignRole grants a role to a user in a community, replacing whatever role
// they held there before. Platform administrators are always pinned to the
// system_administrator role regardless of what was requested.
func (s *MembershipService) AssignRole(ctx context.Context, in AssignRoleInput) (*models.Role, error) {
	if _, err := s.communityRepo.GetByID(ctx, in.CommunityID); err != nil {
		return nil, notFoundOrStore(err, "Community", in.CommunityID)
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, notFoundOrStore(err, "User", in.UserID)
	}

	// Admins never need a role name; it is overridden anyway.
	roleName := in.RoleName
	if user.IsAdmin {
		roleName = models.RoleSystemAdministrator
	} else if roleName == "" {
		return nil, models.NewValidationError("role_name is required")
	}

	role, ok := s.registry.Resolve(roleName)
	if !ok {
		return nil, models.NewNotFoundMessageError("Role " + roleName + " not found")
	}

	membership := &models.Membership{
		UserID:      in.UserID,
		CommunityID: in.CommunityID,
		RoleID:      role.ID,
	}
	if err := s.membershipRepo.Assign(ctx, membership); err != nil {
		return nil, models.NewStoreError(err)
	}

	observability.RoleAssignments.WithLabelValues(role.Name).Inc()
	return &role, nil
}

// GetRole returns the user's role in the community, NOT_FOUND when they have
// no membership there.
func (s *MembershipService) GetRole(ctx context.Context, userID, communityID uint) (*models.Role, error) {
	role, err := s.membershipRepo.GetRole(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessageError("User has no role in this community")
		}
		return nil, models.NewStoreError(err)
	}
	return role, nil
}

// CanManage reports whether the user holds a privileged role in the
// community or is a platform administrator. Users with no membership and no
// admin flag simply cannot manage; that is not an error.
func (s *MembershipService) CanManage(ctx context.Context, userID, communityID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, notFoundOrStore(err, "User", userID)
	}
	if user.IsAdmin {
		return true, nil
	}

	role, err := s.membershipRepo.GetRole(ctx, userID, communityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewStoreError(err)
	}
	return roles.IsPrivileged(role.Name), nil
}

// RemoveMember drops the user's membership in the community.
func (s *MembershipService) RemoveMember(ctx context.Context, userID, communityID uint) error {
	if err := s.membershipRepo.Remove(ctx, userID, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundMessageError("User is not a member of this community")
		}
		return models.NewStoreError(err)
	}
	return nil
}

// Roster lists the community's members with their resolved role names.
func (s *MembershipService) Roster(ctx context.Context, communityID uint) ([]models.RosterEntry, error) {
	if _, err := s.communityRepo.GetByID(ctx, communityID); err != nil {
		return nil, notFoundOrStore(err, "Community", communityID)
	}
	entries, err := s.membershipRepo.Roster(ctx, communityID)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}
