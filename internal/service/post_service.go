package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxPostLength = 5000

// PostService handles business logic for posts
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLength {
		return "", models.NewValidationError("Post content is too long")
	}
	return content, nil
}

// Create publishes a new post for the user.
func (s *PostService) Create(ctx context.Context, userID uint, content, mediaURL string) (*models.Post, error) {
	content, err := validatePostContent(content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   userID,
		Content:  content,
		MediaURL: strings.TrimSpace(mediaURL),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, userID)
}

// Get fetches a single post with the caller's liked/saved flags.
func (s *PostService) Get(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// List returns the feed, newest first.
func (s *PostService) List(ctx context.Context, page, limit int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.postRepo.List(ctx, limit, (page-1)*limit, currentUserID)
}

// ListByUser returns a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID uint, page, limit int, currentUserID uint) ([]*models.Post, int64, error) {
	return s.postRepo.ListByUser(ctx, userID, limit, (page-1)*limit, currentUserID)
}

// ListSaved returns the posts the user has saved, most recently saved first.
func (s *PostService) ListSaved(ctx context.Context, userID uint, page, limit int) ([]*models.Post, int64, error) {
	return s.postRepo.ListSaved(ctx, userID, limit, (page-1)*limit)
}

// ListLiked returns the posts the user has liked, most recently liked first.
func (s *PostService) ListLiked(ctx context.Context, userID uint, page, limit int) ([]*models.Post, int64, error) {
	return s.postRepo.ListLiked(ctx, userID, limit, (page-1)*limit)
}

// Update edits a post's content and media. Only the author may edit.
func (s *PostService) Update(ctx context.Context, userID, postID uint, content, mediaURL string) (*models.Post, error) {
	content, err := validatePostContent(content)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	post.Content = content
	post.MediaURL = strings.TrimSpace(mediaURL)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author may delete. Comments under the post
// become unreachable through the API once the post is gone.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on a post. Any authenticated user may
// like any post, including their own.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, 0, err
	}
	return s.postRepo.ToggleLike(ctx, userID, postID)
}

// ToggleSave flips the caller's save on a post.
func (s *PostService) ToggleSave(ctx context.Context, userID, postID uint) (bool, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, 0, err
	}
	return s.postRepo.ToggleSave(ctx, userID, postID)
}
