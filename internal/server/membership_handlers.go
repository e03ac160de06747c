package server

import (
	"commons/internal/models"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMembers handles GET /api/communities/:communityId/members
func (s *Server) GetMembers(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	roster, err := s.membershipService.Roster(c.UserContext(), communityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"data": roster})
}

// AssignRole handles POST /api/communities/:communityId/roles
func (s *Server) AssignRole(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	var req struct {
		UserID   uint   `json:"user_id"`
		RoleName string `json:"role_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	role, err := s.membershipService.AssignRole(c.UserContext(), service.AssignRoleInput{
		CommunityID: communityID,
		UserID:      req.UserID,
		RoleName:    req.RoleName,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id": req.UserID,
		"role":    role,
	})
}

// GetMemberRole handles GET /api/communities/:communityId/roles/:userId
func (s *Server) GetMemberRole(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	role, err := s.membershipService.GetRole(c.UserContext(), userID, communityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(role)
}

// RemoveMember handles DELETE /api/communities/:communityId/members/:userId
func (s *Server) RemoveMember(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.membershipService.RemoveMember(c.UserContext(), userID, communityID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}
