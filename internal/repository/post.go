package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error)
	ListSaved(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likesCount int64, err error)
	ToggleSave(ctx context.Context, userID, postID uint) (saved bool, savedCount int64, err error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withViewerFlags selects posts together with per-viewer liked/saved flags.
// The EXISTS form is portable across postgres and sqlite so the same queries
// run under tests.
func (r *postRepository) withViewerFlags(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID == 0 {
		return db.Select("posts.*, 0 AS liked, 0 AS saved")
	}
	return db.Select("posts.*, "+
		"EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked, "+
		"EXISTS(SELECT 1 FROM saved_posts WHERE saved_posts.post_id = posts.id AND saved_posts.user_id = ?) AS saved",
		currentUserID, currentUserID)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	fetch := func(dest *models.Post) error {
		err := r.withViewerFlags(r.db.WithContext(ctx).Preload("User"), currentUserID).
			First(dest, "posts.id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var post models.Post
	// Viewer-neutral reads (existence checks, anonymous fetches) are the hot
	// path and safe to cache; per-viewer flags are not.
	if currentUserID == 0 {
		if err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return fetch(&post)
		}); err != nil {
			return nil, err
		}
		return &post, nil
	}

	if err := fetch(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.withViewerFlags(r.db.WithContext(ctx).Preload("User"), currentUserID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.withViewerFlags(r.db.WithContext(ctx).Preload("User"), currentUserID).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListSaved(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.SavedPost{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.withViewerFlags(r.db.WithContext(ctx).Preload("User"), userID).
		Joins("JOIN saved_posts ON saved_posts.post_id = posts.id AND saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListLiked(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.withViewerFlags(r.db.WithContext(ctx).Preload("User"), userID).
		Joins("JOIN likes ON likes.post_id = posts.id AND likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Model(post).
		Select("content", "media_url").
		Updates(map[string]interface{}{
			"content":   post.Content,
			"media_url": post.MediaURL,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(post.ID))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			return err
		}
		// Membership rows are hard-deleted together with the post so that a
		// recreated ID can never inherit stale likes or saves.
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.SavedPost{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

// ToggleLike flips the caller's like membership for the post and recomputes
// the persisted counter inside one transaction. The returned count is the
// recomputed value, never a read-modify-write of the cached column.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("likes_count", count).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	return liked, count, nil
}

// ToggleSave mirrors ToggleLike for the saved-posts membership set.
func (r *postRepository) ToggleSave(ctx context.Context, userID, postID uint) (bool, int64, error) {
	var saved bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SavedPost
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			saved = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.SavedPost{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			saved = true
		default:
			return err
		}

		if err := tx.Model(&models.SavedPost{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("saved_count", count).Error
	})
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	return saved, count, nil
}
