package server

import (
	"commons/internal/models"
	"commons/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/communities/:communityId/posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), communityID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/communities/:communityId/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:      currentUserID(c),
		CommunityID: communityID,
		PostID:      postID,
		Content:     req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment handles PUT /api/communities/:communityId/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "communityId"); err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/communities/:communityId/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	communityID, err := s.parseID(c, "communityId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:      currentUserID(c),
		CommunityID: communityID,
		CommentID:   commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
