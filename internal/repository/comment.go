package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error)
	// ListByPost returns every comment on the post, newest first. The full
	// set is needed to assemble the reply tree in memory.
	ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error)
	ListByPostFlat(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, int64, error)
	ListReplies(ctx context.Context, parentID uint, limit, offset int, currentUserID uint) ([]*models.Comment, int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	// DeleteThread removes the given comment IDs (a root and its collected
	// descendants) and their like rows in one transaction. topLevel reports
	// whether the root was a direct post comment, which decides whether the
	// post's comment counter moves.
	DeleteThread(ctx context.Context, postID uint, ids []uint, topLevel bool) error
	ToggleLike(ctx context.Context, userID, commentID uint) (liked bool, likesCount int64, err error)
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// withLikedFlag selects comments together with the per-viewer liked flag.
func (r *commentRepository) withLikedFlag(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID == 0 {
		return db.Select("comments.*, 0 AS liked")
	}
	return db.Select("comments.*, "+
		"EXISTS(SELECT 1 FROM comment_likes WHERE comment_likes.comment_id = comments.id AND comment_likes.user_id = ?) AS liked",
		currentUserID)
}

// Create inserts the comment and, when it is a top-level comment, advances
// the post's comment counter in the same transaction. Replies do not move
// the counter.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if comment.ParentID == nil {
			return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
				UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(comment.PostID))
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.withLikedFlag(r.db.WithContext(ctx).Preload("User"), currentUserID).
		First(&comment, "comments.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, currentUserID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.withLikedFlag(r.db.WithContext(ctx).Preload("User"), currentUserID).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByPostFlat(ctx context.Context, postID uint, limit, offset int, currentUserID uint) ([]*models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []*models.Comment
	err := r.withLikedFlag(r.db.WithContext(ctx).Preload("User"), currentUserID).
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint, limit, offset int, currentUserID uint) ([]*models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", parentID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var comments []*models.Comment
	err := r.withLikedFlag(r.db.WithContext(ctx).Preload("User"), currentUserID).
		Where("comments.parent_id = ?", parentID).
		Order("comments.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Model(comment).
		Update("content", comment.Content).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) DeleteThread(ctx context.Context, postID uint, ids []uint, topLevel bool) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if topLevel {
			// Only the root counts against the post's comment counter;
			// replies never did.
			return tx.Model(&models.Post{}).
				Where("id = ? AND comments_count > 0", postID).
				UpdateColumn("comments_count", gorm.Expr("comments_count - 1")).Error
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

// ToggleLike flips the caller's like membership for the comment and
// recomputes the persisted counter inside one transaction.
func (r *commentRepository) ToggleLike(ctx context.Context, userID, commentID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CommentLike
		err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := tx.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", count).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}
	return liked, count, nil
}
