package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id/profile. The response bundles the
// public profile with the user's posts and their total post count.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, getErr := s.userService.GetProfile(c.Context(), userID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}

	p := parsePagination(c, 10)
	posts, total, listErr := s.postService.ListByUser(c.Context(), userID, p.Page, p.Limit, currentUserID(c))
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(models.DataEnvelope{Success: true, Data: fiber.Map{
		"user":       profile,
		"posts":      posts,
		"postsCount": total,
	}})
}
