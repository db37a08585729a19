package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, createErr := s.commentService.Create(c.Context(), currentUserID(c), postID, req.Content, req.ParentID)
	if createErr != nil {
		return respondServiceError(c, createErr)
	}

	return c.Status(fiber.StatusCreated).JSON(models.DataEnvelope{
		Success: true,
		Message: "Comment created",
		Data:    comment,
	})
}

// GetComments handles GET /api/posts/:postId/comments. Top-level comments
// paginate; each carries its full reply tree.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	page, listErr := s.commentService.ListTree(c.Context(), postID, p.Page, p.Limit, currentUserID(c))
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(models.ListEnvelope{
		Success: true,
		Count:   page.Count,
		Total:   page.Total,
		Pages:   page.Pages,
		Data:    page.Comments,
	})
}

// GetCommentsFlat handles GET /api/posts/:postId/comments/all, returning
// every comment on the post in chronological order without nesting.
func (s *Server) GetCommentsFlat(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	comments, total, listErr := s.commentService.ListFlat(c.Context(), postID, p.Page, p.Limit, currentUserID(c))
	if listErr != nil {
		return respondServiceError(c, listErr)
	}
	return c.JSON(models.NewListEnvelope(len(comments), total, p.Limit, comments))
}

// GetReplies handles GET /api/comments/:commentId/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 10)
	replies, total, listErr := s.commentService.ListReplies(c.Context(), commentID, p.Page, p.Limit, currentUserID(c))
	if listErr != nil {
		return respondServiceError(c, listErr)
	}
	return c.JSON(models.NewListEnvelope(len(replies), total, p.Limit, replies))
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
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

	comment, updateErr := s.commentService.Update(c.Context(), currentUserID(c), commentID, req.Content)
	if updateErr != nil {
		return respondServiceError(c, updateErr)
	}

	return c.JSON(models.DataEnvelope{
		Success: true,
		Message: "Comment updated",
		Data:    comment,
	})
}

// DeleteComment handles DELETE /api/comments/:commentId. The comment's whole
// reply subtree goes with it.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), currentUserID(c), commentID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.MessageEnvelope{
		Success: true,
		Message: "Comment deleted",
	})
}

// ToggleLikeComment handles POST /api/comments/:commentId/like
func (s *Server) ToggleLikeComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	liked, count, toggleErr := s.commentService.ToggleLike(c.Context(), currentUserID(c), commentID)
	if toggleErr != nil {
		return respondServiceError(c, toggleErr)
	}

	return c.JSON(models.ToggleEnvelope{
		Success:    true,
		Liked:      liked,
		LikesCount: int(count),
	})
}
