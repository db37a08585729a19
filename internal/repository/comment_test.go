package repository

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestComment(t *testing.T, repo CommentRepository, postID, userID uint, parent *models.Comment) *models.Comment {
	t.Helper()
	comment := &models.Comment{PostID: postID, UserID: userID, Content: "comment"}
	if parent != nil {
		comment.ParentID = &parent.ID
		comment.Level = parent.Level + 1
	}
	require.NoError(t, repo.Create(testCtx(), comment))
	return comment
}

func TestCommentRepository_CreateMovesCounterForTopLevelOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID)

	root := createTestComment(t, repo, post.ID, user.ID, nil)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.CommentsCount)

	// Replies never move the post counter.
	createTestComment(t, repo, post.ID, user.ID, root)

	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.CommentsCount)
}

func TestCommentRepository_DeleteThread(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")
	post := createTestPost(t, db, user.ID)

	root := createTestComment(t, repo, post.ID, user.ID, nil)
	reply := createTestComment(t, repo, post.ID, other.ID, root)
	nested := createTestComment(t, repo, post.ID, user.ID, reply)
	keeper := createTestComment(t, repo, post.ID, other.ID, nil)

	_, _, err := repo.ToggleLike(testCtx(), other.ID, reply.ID)
	require.NoError(t, err)

	err = repo.DeleteThread(testCtx(), post.ID, []uint{root.ID, reply.ID, nested.ID}, true)
	require.NoError(t, err)

	var remaining []models.Comment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, keeper.ID, remaining[0].ID)

	// Like rows for the removed subtree are gone.
	var likeRows int64
	require.NoError(t, db.Model(&models.CommentLike{}).Count(&likeRows).Error)
	assert.Equal(t, int64(0), likeRows)

	// Counter drops by one: the deleted root was top-level, the surviving
	// root still counts.
	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.CommentsCount)
}

func TestCommentRepository_DeleteThread_ReplyKeepsCounter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID)

	root := createTestComment(t, repo, post.ID, user.ID, nil)
	reply := createTestComment(t, repo, post.ID, user.ID, root)

	require.NoError(t, repo.DeleteThread(testCtx(), post.ID, []uint{reply.ID}, false))

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.CommentsCount)
}

func TestCommentRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "author")
	fan := createTestUser(t, db, "fan")
	post := createTestPost(t, db, user.ID)
	comment := createTestComment(t, repo, post.ID, user.ID, nil)

	liked, count, err := repo.ToggleLike(testCtx(), fan.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, 1, stored.LikesCount)

	withFlag, err := repo.GetByID(testCtx(), comment.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, withFlag.Liked)

	liked, count, err = repo.ToggleLike(testCtx(), fan.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)
}

func TestCommentRepository_ListOrderings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	user := createTestUser(t, db, "author")
	post := createTestPost(t, db, user.ID)

	first := createTestComment(t, repo, post.ID, user.ID, nil)
	second := createTestComment(t, repo, post.ID, user.ID, nil)

	// Force distinct timestamps; sqlite rounds to the same instant otherwise.
	require.NoError(t, db.Model(first).UpdateColumn("created_at", "2026-01-01 10:00:00").Error)
	require.NoError(t, db.Model(second).UpdateColumn("created_at", "2026-01-02 10:00:00").Error)

	desc, err := repo.ListByPost(testCtx(), post.ID, 0)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, second.ID, desc[0].ID)

	asc, total, err := repo.ListByPostFlat(testCtx(), post.ID, 10, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, asc, 2)
	assert.Equal(t, first.ID, asc[0].ID)
}
