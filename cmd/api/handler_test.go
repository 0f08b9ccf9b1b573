package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	authdomain "taskmanager-backend/internal/auth/domain"
	authRepo "taskmanager-backend/internal/auth/repository"
	authUsecase "taskmanager-backend/internal/auth/usecase"
	taskdomain "taskmanager-backend/internal/task/domain"
	taskRepo "taskmanager-backend/internal/task/repository"
	taskUsecase "taskmanager-backend/internal/task/usecase"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/database"
	"taskmanager-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	r, _ := newTestEngineWithStorage(t)
	return r
}

func newTestEngineWithStorage(t *testing.T) (*gin.Engine, *storage.Local) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &taskdomain.Task{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	root := t.TempDir()
	cfg := config.Defaults()
	cfg.ClientURLs = []string{"http://app.example"}
	cfg.PublicDir = filepath.Join(root, "public")
	cfg.AvatarUploadPath = filepath.Join(root, "uploads", "avatars")

	require.NoError(t, os.MkdirAll(filepath.Join(cfg.PublicDir, "defaults"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PublicDir, "defaults", "default-avatar.png"), []byte("png"), 0o644))

	avatars, err := storage.NewLocal(cfg.AvatarUploadPath, cfg.AvatarURLPrefix)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authUC := authUsecase.NewAuthUsecase(authRepo.NewUserRepository(db), authUsecase.NewTokenManager("test-secret", time.Hour), avatars, cfg, log)
	taskUC := taskUsecase.NewTaskUsecase(taskRepo.NewGormTaskRepository(db), log)

	return NewHandler(authUC, taskUC, avatars, cfg, log).Engine(), avatars
}

func serve(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	r := newTestEngine(t)

	rec := serve(r, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API Running", rec.Body.String())

	rec = serve(r, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://app.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "x-auth-token")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "user-id")

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicFiles(t *testing.T) {
	r := newTestEngine(t)

	rec := serve(r, http.MethodGet, "/defaults/default-avatar.png", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = serve(r, http.MethodGet, "/../../etc/passwd", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(r, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"msg":"Not found"}`, rec.Body.String())
}

func TestUserAndTaskFlow(t *testing.T) {
	r := newTestEngine(t)

	rec := serve(r, http.MethodPost, "/api/users/register", "", `{"name":"Ada","email":"Ada@Example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var auth struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))
	assert.Equal(t, "ada@example.com", auth.User["email"])

	rec = serve(r, http.MethodPost, "/api/users/login", "", `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, http.MethodGet, "/api/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(r, http.MethodPost, "/api/tasks/create", auth.Token, `{"title":"Plan sprint","priority":"high"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var task map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, auth.User["_id"], task["user"])

	rec = serve(r, http.MethodGet, "/api/tasks/filter/results?search=sprint", auth.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task["_id"], tasks[0]["_id"])

	rec = serve(r, http.MethodDelete, "/api/tasks/"+task["_id"].(string), auth.Token, "")
	assert.JSONEq(t, `{"msg":"Task removed"}`, rec.Body.String())
}

func TestUploadedAvatarsAreServed(t *testing.T) {
	r, avatars := newTestEngineWithStorage(t)

	url, err := avatars.Save(context.Background(), "avatar-1.png", []byte("img"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, avatars.URLPrefix()+"/"))

	rec := serve(r, http.MethodGet, url, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "img", rec.Body.String())
}
