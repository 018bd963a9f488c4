package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/identity"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/model"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/repository"
	"github.com/Yahya-git/To-Do-List-MS/tasks-service/internal/service/report"
)

type fakeTaskStore struct {
	count     int
	tasks     []model.Task
	created   *model.Task
	updated   repository.UpdateTaskParams
	updatedID int
}

func (f *fakeTaskStore) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	t.ID = 1
	f.created = t
	return t, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, id, userID int, p repository.UpdateTaskParams) (*model.Task, error) {
	f.updatedID = id
	f.updated = p
	return &model.Task{ID: id, UserID: userID}, nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id, userID int) error { return nil }

func (f *fakeTaskStore) Get(ctx context.Context, id, userID int) (*model.Task, error) {
	return &model.Task{ID: id, UserID: userID}, nil
}

func (f *fakeTaskStore) List(ctx context.Context, userID int, search, sort string) ([]model.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskStore) Similar(ctx context.Context, userID int) ([]model.SimilarTask, error) {
	return nil, nil
}

func (f *fakeTaskStore) CountByUser(ctx context.Context, userID int) (int, error) {
	return f.count, nil
}

type fakeDirectory struct{}

func (fakeDirectory) GetUser(ctx context.Context, current identity.CurrentUser) (report.UserProfile, error) {
	return report.UserProfile{ID: current.ID, Email: current.Email, CreatedAt: time.Now()}, nil
}

func newTaskRouter(store *fakeTaskStore, maxTasks int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTaskHandler(store, nil, fakeDirectory{}, maxTasks, zap.NewNop())

	r := gin.New()
	authed := r.Group("/", identity.Middleware())
	authed.POST("/tasks", h.Create)
	authed.GET("/tasks", h.List)
	authed.PUT("/tasks/:id", h.Update)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	identity.SetHeaders(req.Header, identity.CurrentUser{ID: 1, Email: "a@b.com"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_UnderQuota(t *testing.T) {
	store := &fakeTaskStore{count: 49}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"title": "buy milk"})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, store.created)
	assert.Equal(t, "buy milk", store.created.Title)
	assert.Equal(t, 1, store.created.UserID)
}

func TestCreate_QuotaReached(t *testing.T) {
	store := &fakeTaskStore{count: 50}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"title": "one too many"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error": "maximum number of tasks reached"}`, w.Body.String())
	assert.Nil(t, store.created)
}

func TestCreate_TitleRequired(t *testing.T) {
	store := &fakeTaskStore{}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodPost, "/tasks", gin.H{"description": "no title"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_EmptyIs404(t *testing.T) {
	store := &fakeTaskStore{}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodGet, "/tasks", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "there are no tasks"}`, w.Body.String())
}

func TestUpdate_CompletionStampsTime(t *testing.T) {
	store := &fakeTaskStore{}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodPut, "/tasks/5", gin.H{"is_completed": true})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, store.updatedID)
	require.NotNil(t, store.updated.IsCompleted)
	assert.True(t, *store.updated.IsCompleted)
	require.NotNil(t, store.updated.CompletedAt)
	assert.WithinDuration(t, time.Now(), *store.updated.CompletedAt, time.Minute)
}

func TestUpdate_UncompletingClearsTime(t *testing.T) {
	store := &fakeTaskStore{}
	r := newTaskRouter(store, 50)

	w := doJSON(t, r, http.MethodPut, "/tasks/5", gin.H{"is_completed": false})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.updated.IsCompleted)
	assert.False(t, *store.updated.IsCompleted)
	assert.Nil(t, store.updated.CompletedAt)
}

func TestRejectedWithoutIdentityHeaders(t *testing.T) {
	store := &fakeTaskStore{}
	r := newTaskRouter(store, 50)

	req, _ := http.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
