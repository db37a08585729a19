package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// envelope is a loose superset of every response body the API produces.
type envelope struct {
	Success    bool            `json:"success"`
	Error      string          `json:"error"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Count      int             `json:"count"`
	Total      int64           `json:"total"`
	Pages      int             `json:"pages"`
	Liked      bool            `json:"liked"`
	LikesCount int             `json:"likesCount"`
	Saved      bool            `json:"saved"`
	Data       json.RawMessage `json:"data"`
}

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	cache.SetClient(nil)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.SavedPost{},
	))

	cfg := &config.Config{JWTSecret: "test-secret", Port: "0", Env: "test"}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	return s, s.App(), db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp, env
}

// registerUser creates an account through the API and returns its token and ID.
func registerUser(t *testing.T, app *fiber.App, nickname string) (string, uint) {
	t.Helper()

	resp, env := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Test " + nickname,
		"email":    nickname + "@example.com",
		"nickname": nickname,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token, data.User.ID
}

func createPostViaAPI(t *testing.T, app *fiber.App, token, content string) uint {
	t.Helper()
	resp, env := doRequest(t, app, http.MethodPost, "/api/posts", token, fiber.Map{"content": content})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	return post.ID
}

func TestAuthFlow(t *testing.T) {
	_, app, _ := setupTestServer(t)

	resp, env := doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Ada",
		"email":    "ada@example.com",
		"nickname": "Ada_L",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "jwt=")

	// Nickname uniqueness is case-insensitive through normalization.
	resp, env = doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Imposter",
		"email":    "other@example.com",
		"nickname": "ADA_l",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, models.CodeValidation, env.Code)

	resp, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	resp, env = doRequest(t, app, http.MethodGet, "/api/auth/me", data.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ada_l", me.Nickname)

	resp, env = doRequest(t, app, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, models.CodeUnauthenticated, env.Code)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A picture supplied at registration is kept instead of the generated
	// avatar.
	resp, env = doRequest(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":            "Grace",
		"email":           "grace@example.com",
		"nickname":        "grace_h",
		"password":        "password123",
		"profile_picture": "https://example.com/grace.png",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var registered struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.Equal(t, "https://example.com/grace.png", registered.User.ProfilePicture)
}

func TestMetricsEndpoint(t *testing.T) {
	_, app, _ := setupTestServer(t)

	registerUser(t, app, "measured")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestPostLifecycle(t *testing.T) {
	_, app, _ := setupTestServer(t)

	ownerToken, _ := registerUser(t, app, "owner")
	otherToken, _ := registerUser(t, app, "other")

	postID := createPostViaAPI(t, app, ownerToken, "hello world")
	path := fmt.Sprintf("/api/posts/%d", postID)

	// Non-owner edits are rejected.
	resp, env := doRequest(t, app, http.MethodPut, path, otherToken, fiber.Map{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, models.CodeForbidden, env.Code)

	resp, env = doRequest(t, app, http.MethodPut, path, ownerToken, fiber.Map{"content": "edited"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post models.Post
	require.NoError(t, json.Unmarshal(env.Data, &post))
	assert.Equal(t, "edited", post.Content)

	// Like and save toggles from another user.
	resp, env = doRequest(t, app, http.MethodPost, path+"/like", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Liked)
	assert.Equal(t, 1, env.LikesCount)

	resp, env = doRequest(t, app, http.MethodPost, path+"/save", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Saved)

	resp, env = doRequest(t, app, http.MethodGet, "/api/posts/saved", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.Count)

	resp, env = doRequest(t, app, http.MethodGet, "/api/posts/liked", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.Count)

	// Second toggle flips back.
	resp, env = doRequest(t, app, http.MethodPost, path+"/like", otherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, env.Liked)
	assert.Equal(t, 0, env.LikesCount)

	// Non-owner deletes are rejected; the owner's succeed.
	resp, _ = doRequest(t, app, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, path, ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doRequest(t, app, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, models.CodeNotFound, env.Code)
}

func TestGetPosts_Pagination(t *testing.T) {
	_, app, _ := setupTestServer(t)

	token, _ := registerUser(t, app, "writer")
	for i := 0; i < 5; i++ {
		createPostViaAPI(t, app, token, fmt.Sprintf("post %d", i))
	}

	resp, env := doRequest(t, app, http.MethodGet, "/api/posts?page=1&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, env.Count)
	assert.Equal(t, int64(5), env.Total)
	assert.Equal(t, 3, env.Pages)

	resp, env = doRequest(t, app, http.MethodGet, "/api/posts?page=3&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, env.Count)

	// Out-of-range pages return an empty data set, not an error.
	resp, env = doRequest(t, app, http.MethodGet, "/api/posts?page=9&limit=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, env.Count)
}

func TestGetUserProfile(t *testing.T) {
	_, app, _ := setupTestServer(t)

	token, userID := registerUser(t, app, "profiled")
	createPostViaAPI(t, app, token, "a post from the profiled user")

	resp, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", userID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		User       models.PublicProfile `json:"user"`
		Posts      []models.Post        `json:"posts"`
		PostsCount int64                `json:"postsCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "profiled", payload.User.Nickname)
	require.Len(t, payload.Posts, 1)
	assert.Equal(t, int64(1), payload.PostsCount)

	resp, env = doRequest(t, app, http.MethodGet, "/api/users/9999/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, env.Code)
}
