package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/filestore"
	"github.com/inkpost/inkpost/internal/handler"
	"github.com/inkpost/inkpost/internal/middleware"
	"github.com/inkpost/inkpost/internal/model"
	appErr "github.com/inkpost/inkpost/internal/pkg/errors"
	"github.com/inkpost/inkpost/internal/service"
)

var testSecret = []byte("test-secret")

type memUserDirectory struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserDirectory() *memUserDirectory {
	return &memUserDirectory{users: make(map[string]*model.User)}
}

func (m *memUserDirectory) Create(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserDirectory) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (m *memUserDirectory) GetByID(ctx context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *memUserDirectory) delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

type memBlogStore struct {
	mu    sync.Mutex
	blogs map[string]*model.Blog
}

func newMemBlogStore() *memBlogStore {
	return &memBlogStore{blogs: make(map[string]*model.Blog)}
}

func (m *memBlogStore) Create(ctx context.Context, blog *model.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *blog
	m.blogs[blog.ID] = &clone
	return nil
}

func (m *memBlogStore) GetByID(ctx context.Context, blogID string) (*model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.blogs[blogID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *blog
	return &clone, nil
}

func (m *memBlogStore) List(ctx context.Context) ([]model.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blogs := make([]model.Blog, 0, len(m.blogs))
	for _, blog := range m.blogs {
		blogs = append(blogs, *blog)
	}
	return blogs, nil
}

func (m *memBlogStore) Update(ctx context.Context, blogID string, update map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	blog, ok := m.blogs[blogID]
	if !ok {
		return appErr.ErrNotFound
	}
	if title, ok := update["title"].(string); ok {
		blog.Title = title
	}
	if content, ok := update["content"].(string); ok {
		blog.Content = content
	}
	if mtime, ok := update["mtime"].(int64); ok {
		blog.Mtime = mtime
	}
	return nil
}

func (m *memBlogStore) Delete(ctx context.Context, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[blogID]; !ok {
		return appErr.ErrNotFound
	}
	delete(m.blogs, blogID)
	return nil
}

type memRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]*model.RevokedToken
}

func newMemRevocationStore() *memRevocationStore {
	return &memRevocationStore{revoked: make(map[string]*model.RevokedToken)}
}

func (m *memRevocationStore) Create(ctx context.Context, token *model.RevokedToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[token.JTI] = token
	return nil
}

func (m *memRevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

type testEnv struct {
	router *gin.Engine
	users  *memUserDirectory
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserDirectory()
	blogs := newMemBlogStore()
	revocations := newMemRevocationStore()

	authService := service.NewAuthService(users, revocations, testSecret, time.Hour)
	blogService := service.NewBlogService(blogs, users)

	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.CORS(nil))
	handler.RegisterRoutes(engine.Group("/api"), handler.RouterDeps{
		Auth:        handler.NewAuthHandler(authService, handler.NewAvatarUploader(store)),
		Blogs:       handler.NewBlogHandler(blogService),
		Files:       handler.NewFileHandler(store),
		JWTSecret:   testSecret,
		Users:       users,
		Revocations: revocations,
	})
	return &testEnv{router: engine, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) doMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Error.Code, envelope.Error.Message
}
