package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxCommentLength = 2000

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Create adds a comment to a post, or a reply when parentID is set. Replies
// must reference a parent on the same post and sit one level below it.
func (s *CommentService) Create(ctx context.Context, userID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("Comment content is too long")
	}

	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	level := 0
	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID, 0)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
		level = parent.Level + 1
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  content,
		ParentID: parentID,
		Level:    level,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload to attach the author for the response body.
	return s.commentRepo.GetByID(ctx, comment.ID, userID)
}

// ListTree returns one page of the post's comment tree. Only top-level
// comments paginate; each carries its complete reply subtree.
func (s *CommentService) ListTree(ctx context.Context, postID uint, page, limit int, currentUserID uint) (*CommentPage, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}

	nodes, total := BuildCommentTree(comments, page, limit)
	return &CommentPage{
		Comments: nodes,
		Count:    len(nodes),
		Total:    total,
		Pages:    pageCount(total, limit),
	}, nil
}

// ListFlat returns comments on a post in chronological order without
// nesting, paginated over the whole set.
func (s *CommentService) ListFlat(ctx context.Context, postID uint, page, limit int, currentUserID uint) ([]*models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByPostFlat(ctx, postID, limit, (page-1)*limit, currentUserID)
}

// ListReplies returns direct replies to a comment, newest first.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint, page, limit int, currentUserID uint) ([]*models.Comment, int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListReplies(ctx, commentID, limit, (page-1)*limit, currentUserID)
}

// Update edits a comment's content. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("Comment content is too long")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment and its entire reply subtree. Ownership is
// checked on the root only; descendants by other authors go with it. The
// subtree is collected from a single fetch of the post's comments and
// removed in one transaction.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID, 0)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	all, err := s.commentRepo.ListByPost(ctx, comment.PostID, 0)
	if err != nil {
		return err
	}
	ids := collectThread(all, comment.ID)

	return s.commentRepo.DeleteThread(ctx, comment.PostID, ids, comment.ParentID == nil)
}

// ToggleLike flips the caller's like on a comment and returns the new state
// with the recomputed counter.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID, 0); err != nil {
		return false, 0, err
	}
	return s.commentRepo.ToggleLike(ctx, userID, commentID)
}

// pageCount is ceil(total/limit); zero rows report zero pages.
func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
