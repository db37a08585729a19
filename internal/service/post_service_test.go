package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create_Validation(t *testing.T) {
	svc := NewPostService(&postRepoStub{})

	_, err := svc.Create(context.Background(), 1, "   ", "")
	assert.Equal(t, fiber.StatusBadRequest, models.StatusForError(err))
}

func TestPostService_Create_TrimsContent(t *testing.T) {
	var created *models.Post
	posts := &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			created = p
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return created, nil
		},
	}
	svc := NewPostService(posts)

	post, err := svc.Create(context.Background(), 1, "  hello world  ", " ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", post.Content)
	assert.Empty(t, post.MediaURL)
}

func TestPostService_Update_OwnershipGate(t *testing.T) {
	posts := &postRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 2, Content: "original"}, nil
		},
		updateFn: func(context.Context, *models.Post) error {
			t.Fatal("update must not be reached for a non-owner")
			return nil
		},
	}
	svc := NewPostService(posts)

	_, err := svc.Update(context.Background(), 1, 10, "edited", "")
	assert.Equal(t, fiber.StatusForbidden, models.StatusForError(err))
}

func TestPostService_Delete_OwnershipGate(t *testing.T) {
	posts := &postRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 2}, nil
		},
		deleteFn: func(context.Context, uint) error {
			t.Fatal("delete must not be reached for a non-owner")
			return nil
		},
	}
	svc := NewPostService(posts)

	err := svc.Delete(context.Background(), 1, 10)
	assert.Equal(t, fiber.StatusForbidden, models.StatusForError(err))
}

func TestPostService_ToggleLike_OwnPostAllowed(t *testing.T) {
	posts := &postRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
		toggleLikeFn: func(_ context.Context, userID, postID uint) (bool, int64, error) {
			return true, 1, nil
		},
	}
	svc := NewPostService(posts)

	liked, count, err := svc.ToggleLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
}

func TestPostService_ToggleSave_MissingPost(t *testing.T) {
	posts := &postRepoStub{
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
	}
	svc := NewPostService(posts)

	_, _, err := svc.ToggleSave(context.Background(), 1, 10)
	assert.Equal(t, fiber.StatusNotFound, models.StatusForError(err))
}
