package server

import (
	"commons/internal/models"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/communities/:communityId/categories
func (s *Server) GetCategories(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	pq := parsePageQuery(c, 0)

	categories, totalPages, err := s.categoryService.ListCategories(c.UserContext(), service.ListCategoriesInput{
		CommunityID: communityID,
		Limit:       pq.Limit,
		Page:        pq.Page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"categories":  categories,
		"total_pages": totalPages,
		"page":        pq.Page,
	})
}

// GetCategory handles GET /api/communities/:communityId/categories/:categoryId
func (s *Server) GetCategory(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	category, err := s.categoryService.GetCategory(c.UserContext(), communityID, categoryID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// CheckCategoryName handles GET /api/communities/:communityId/categories/check-name
func (s *Server) CheckCategoryName(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	name := c.Query("name")
	ignoreID := uint(c.QueryInt("ignore_id", 0))

	taken, err := s.categoryService.CheckName(c.UserContext(), communityID, name, ignoreID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if taken {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Category name is already taken"))
	}
	return c.JSON(fiber.Map{"message": "Name is available", "name": name})
}

// CreateCategory handles POST /api/communities/:communityId/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.CreateCategory(c.UserContext(), service.CreateCategoryInput{
		CommunityID: communityID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PUT /api/communities/:communityId/categories/:categoryId
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.categoryService.UpdateCategory(c.UserContext(), service.UpdateCategoryInput{
		CommunityID: communityID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/communities/:communityId/categories/:categoryId
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	if err := s.categoryService.DeleteCategory(c.UserContext(), communityID, categoryID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// MigratePosts handles POST /api/communities/:communityId/categories/:categoryId/migrate-posts
func (s *Server) MigratePosts(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	categoryID, err := s.parseID(c, "categoryId")
	if err != nil {
		return nil
	}

	var req struct {
		TargetCategoryID uint `json:"target_category_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TargetCategoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("target_category_id is required"))
	}

	moved, err := s.categoryService.MigratePosts(c.UserContext(), service.MigratePostsInput{
		CommunityID:    communityID,
		FromCategoryID: categoryID,
		ToCategoryID:   req.TargetCategoryID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":     "Posts migrated",
		"moved_count": moved,
	})
}
