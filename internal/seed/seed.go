// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, posts, threaded comments,
// likes and saves. Derived counters are recomputed from the membership and
// comment tables at the end so the seeded data satisfies the same
// consistency rules the write paths maintain.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}

	posts, err := createPosts(db, r, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}

	if err := createComments(db, r, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	if err := createLikesAndSaves(db, r, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and saves: %w", err)
	}

	if err := RecomputeCounters(db); err != nil {
		return fmt.Errorf("failed to recompute counters: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Reverse dependency order. Unscoped so soft-deleted rows go too.
	for _, m := range []interface{}{
		&models.CommentLike{},
		&models.SavedPost{},
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		nickname := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
		user := &models.User{
			Name:           gofakeit.Name(),
			Email:          fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			Password:       string(hashed),
			Nickname:       nickname,
			ProfilePicture: models.DefaultProfilePicture(nickname),
		}
		users = append(users, user)
	}
	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func createPosts(db *gorm.DB, r *rand.Rand, users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := &models.Post{
			UserID:  users[r.Intn(len(users))].ID,
			Content: gofakeit.Paragraph(1, 3, 8, "\n"),
			// Spread creation over the last 90 days for a realistic feed.
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if r.Intn(3) == 0 {
			post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// createComments writes top-level comments plus a couple of reply
// generations so seeded posts carry real trees.
func createComments(db *gorm.DB, r *rand.Rand, users []*models.User, posts []*models.Post) error {
	var previous []*models.Comment
	for _, post := range posts {
		n := r.Intn(6)
		for i := 0; i < n; i++ {
			comment := &models.Comment{
				PostID:    post.ID,
				UserID:    users[r.Intn(len(users))].ID,
				Content:   gofakeit.Sentence(r.Intn(12) + 3),
				CreatedAt: post.CreatedAt.Add(time.Duration(r.Intn(72)) * time.Hour),
			}
			// Half the comments past the first reply to an earlier one.
			if i > 0 && r.Intn(2) == 0 {
				parent := previous[r.Intn(len(previous))]
				if parent.PostID == post.ID {
					comment.ParentID = &parent.ID
					comment.Level = parent.Level + 1
				}
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
			previous = append(previous, comment)
		}
		previous = previous[:0]
	}
	return nil
}

func createLikesAndSaves(db *gorm.DB, r *rand.Rand, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, user := range users {
			if r.Intn(4) == 0 {
				if err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
			}
			if r.Intn(10) == 0 {
				if err := db.Create(&models.SavedPost{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return err
				}
			}
		}
	}

	var comments []*models.Comment
	if err := db.Find(&comments).Error; err != nil {
		return err
	}
	for _, comment := range comments {
		for i := 0; i < r.Intn(3); i++ {
			like := &models.CommentLike{
				UserID:    users[r.Intn(len(users))].ID,
				CommentID: comment.ID,
			}
			// Random picks collide with the unique index now and then.
			_ = db.Create(like).Error
		}
	}
	return nil
}

// RecomputeCounters rewrites every persisted derived counter from its source
// table: likes_count and saved_count from the membership rows, and
// comments_count from the post's live top-level comments.
func RecomputeCounters(db *gorm.DB) error {
	if err := db.Model(&models.Post{}).Where("1 = 1").
		UpdateColumn("likes_count", gorm.Expr(
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)")).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Post{}).Where("1 = 1").
		UpdateColumn("saved_count", gorm.Expr(
			"(SELECT COUNT(*) FROM saved_posts WHERE saved_posts.post_id = posts.id)")).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Post{}).Where("1 = 1").
		UpdateColumn("comments_count", gorm.Expr(
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.parent_id IS NULL AND comments.deleted_at IS NULL)")).Error; err != nil {
		return err
	}
	return db.Model(&models.Comment{}).Where("1 = 1").
		UpdateColumn("likes_count", gorm.Expr(
			"(SELECT COUNT(*) FROM comment_likes WHERE comment_likes.comment_id = comments.id)")).Error
}
