package server

import (
	"commons/internal/models"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCommunities handles GET /api/communities
func (s *Server) GetCommunities(c *fiber.Ctx) error {
	communities, err := s.communityService.ListCommunities(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(communities)
}

// GetCommunity handles GET /api/communities/:communityId
func (s *Server) GetCommunity(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	community, err := s.communityService.GetCommunity(c.UserContext(), communityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(community)
}

// CheckCommunityName handles GET /api/communities/check-name?name=...&ignore_id=...
func (s *Server) CheckCommunityName(c *fiber.Ctx) error {
	name := c.Query("name")
	ignoreID := uint(c.QueryInt("ignore_id", 0))

	taken, err := s.communityService.CheckName(c.UserContext(), name, ignoreID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if taken {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Community name is already taken"))
	}
	return c.JSON(fiber.Map{"message": "Name is available", "name": name})
}

// CreateCommunity handles POST /api/communities
func (s *Server) CreateCommunity(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Picture     string `json:"picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, err := s.communityService.CreateCommunity(c.UserContext(), service.CreateCommunityInput{
		ActorID:     currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(community)
}

// UpdateCommunity handles PUT /api/communities/:communityId
func (s *Server) UpdateCommunity(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Picture     string `json:"picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, err := s.communityService.UpdateCommunity(c.UserContext(), service.UpdateCommunityInput{
		CommunityID: communityID,
		Name:        req.Name,
		Description: req.Description,
		Picture:     req.Picture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(community)
}

// ChangeCommunityPicture handles PATCH /api/communities/:communityId/picture
func (s *Server) ChangeCommunityPicture(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	var req struct {
		Picture string `json:"picture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	community, err := s.communityService.ChangePicture(c.UserContext(), communityID, req.Picture)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(community)
}

// DeleteCommunity handles DELETE /api/communities/:communityId
func (s *Server) DeleteCommunity(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	if err := s.communityService.DeleteCommunity(c.UserContext(), service.DeleteCommunityInput{
		ActorID:     currentUserID(c),
		CommunityID: communityID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Community deleted"})
}
