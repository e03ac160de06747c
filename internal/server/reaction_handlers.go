package server

import (
	"commons/internal/models"

	"github.com/gofiber/fiber/v2"
)

func reactionResponse(c *fiber.Ctx, outcome models.ReactionOutcome) error {
	switch outcome {
	case models.ReactionCreated:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Reaction created",
			"outcome": outcome,
		})
	case models.ReactionUpdated:
		return c.JSON(fiber.Map{"message": "Reaction updated", "outcome": outcome})
	default:
		return c.JSON(fiber.Map{"message": "Reaction removed", "outcome": outcome})
	}
}

// TogglePostReaction handles POST /api/communities/:communityId/posts/:postId/reactions
func (s *Server) TogglePostReaction(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "communityId"); err != nil {
		return nil
	}
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	outcome, err := s.reactionService.TogglePostReaction(c.UserContext(), currentUserID(c), postID, req.ReactionType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return reactionResponse(c, outcome)
}

// ToggleCommentReaction handles POST /api/communities/:communityId/comments/:commentId/reactions
func (s *Server) ToggleCommentReaction(c *fiber.Ctx) error {
	if _, err := s.parseID(c, "communityId"); err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	outcome, err := s.reactionService.ToggleCommentReaction(c.UserContext(), currentUserID(c), commentID, req.ReactionType)
	if err != nil {
		return respondServiceError(c, err)
	}
	return reactionResponse(c, outcome)
}
