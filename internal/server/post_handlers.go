package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, total, err := s.postService.List(c.Context(), p.Page, p.Limit, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.NewListEnvelope(len(posts), total, p.Limit, posts))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), postID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.DataEnvelope{Success: true, Data: post})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content  string `json:"content"`
		MediaURL string `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), currentUserID(c), req.Content, req.MediaURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.DataEnvelope{
		Success: true,
		Message: "Post created",
		Data:    post,
	})
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		MediaURL string `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.Context(), currentUserID(c), postID, req.Content, req.MediaURL)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.DataEnvelope{
		Success: true,
		Message: "Post updated",
		Data:    post,
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(models.MessageEnvelope{
		Success: true,
		Message: "Post deleted",
	})
}

// GetUserPosts handles GET /api/posts/user/:userId
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 10)
	posts, total, listErr := s.postService.ListByUser(c.Context(), userID, p.Page, p.Limit, currentUserID(c))
	if listErr != nil {
		return respondServiceError(c, listErr)
	}
	return c.JSON(models.NewListEnvelope(len(posts), total, p.Limit, posts))
}

// GetSavedPosts handles GET /api/posts/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, total, err := s.postService.ListSaved(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.NewListEnvelope(len(posts), total, p.Limit, posts))
}

// GetLikedPosts handles GET /api/posts/liked
func (s *Server) GetLikedPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 10)
	posts, total, err := s.postService.ListLiked(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.NewListEnvelope(len(posts), total, p.Limit, posts))
}

// ToggleLikePost handles POST /api/posts/:id/like
func (s *Server) ToggleLikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, count, toggleErr := s.postService.ToggleLike(c.Context(), currentUserID(c), postID)
	if toggleErr != nil {
		return respondServiceError(c, toggleErr)
	}

	return c.JSON(models.ToggleEnvelope{
		Success:    true,
		Liked:      liked,
		LikesCount: int(count),
	})
}

// ToggleSavePost handles POST /api/posts/:id/save
func (s *Server) ToggleSavePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	saved, _, toggleErr := s.postService.ToggleSave(c.Context(), currentUserID(c), postID)
	if toggleErr != nil {
		return respondServiceError(c, toggleErr)
	}

	message := "Post saved"
	if !saved {
		message = "Post removed from saved"
	}
	return c.JSON(models.SaveEnvelope{
		Success: true,
		Saved:   saved,
		Message: message,
	})
}
