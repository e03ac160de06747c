package server

import (
	"commons/internal/models"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/communities/:communityId/posts
// Optional query parameters: category_id, limit (default 5), page (default 1).
func (s *Server) GetPosts(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	pq := parsePageQuery(c, service.DefaultPostPageSize)

	var categoryID *uint
	if raw := c.QueryInt("category_id", 0); raw > 0 {
		id := uint(raw)
		categoryID = &id
	}

	posts, totalPages, err := s.postService.ListPosts(c.UserContext(), service.ListPostsInput{
		CommunityID: communityID,
		CategoryID:  categoryID,
		Limit:       pq.Limit,
		Page:        pq.Page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":       posts,
		"total_pages": totalPages,
		"page":        pq.Page,
	})
}

// GetPost handles GET /api/communities/:communityId/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), communityID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPostContent handles GET /api/communities/:communityId/posts/:postId/content
func (s *Server) GetPostContent(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	content, err := s.postService.GetPostContent(c.UserContext(), communityID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"id": postID, "content": content})
}

// CreatePost handles POST /api/communities/:communityId/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}

	var req struct {
		CategoryID uint   `json:"category_id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.CategoryID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("category_id is required"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:      currentUserID(c),
		CommunityID: communityID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/communities/:communityId/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		CommunityID: communityID,
		PostID:      postID,
		Title:       req.Title,
		Content:     req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/communities/:communityId/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID:      currentUserID(c),
		CommunityID: communityID,
		PostID:      postID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}
