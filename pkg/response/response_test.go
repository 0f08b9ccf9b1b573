package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskmanager-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperror.Validation("title", "Title is required"), http.StatusBadRequest},
		{apperror.ErrDuplicateEmail, http.StatusBadRequest},
		{apperror.ErrInvalidCredential, http.StatusBadRequest},
		{apperror.ErrUnsupportedMediaType, http.StatusBadRequest},
		{apperror.ErrNotFound, http.StatusNotFound},
		{apperror.ErrForbidden, http.StatusNotFound},
		{apperror.ErrUnauthorized, http.StatusUnauthorized},
		{apperror.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func serve(t *testing.T, h gin.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.POST("/x", h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestError_TaggedField(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		Error(c, discardLogger(), apperror.WithParam(apperror.ErrNotFound, "email", "Email Not Exist"))
	}, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Email Not Exist", out["msg"])
	assert.Equal(t, "email", out["param"])
}

func TestError_InternalHidesCause(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		Error(c, discardLogger(), errors.New("pq: password authentication failed"))
	}, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", out["msg"])
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestError_ForbiddenLooksLikeNotFound(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		Error(c, discardLogger(), apperror.ErrForbidden)
	}, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", out["msg"])
}

type signup struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func TestBindError_ValidationFields(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		var req signup
		if err := c.ShouldBindJSON(&req); err != nil {
			BindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}, `{"name":"","email":"nope","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", out["msg"])
	assert.Equal(t, "name", out["param"])

	errs, ok := out["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, errs, 3)
}

func TestBindError_MalformedJSON(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		var req signup
		if err := c.ShouldBindJSON(&req); err != nil {
			BindError(c, err)
			return
		}
	}, `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", out["msg"])
}

func TestErrorWithStatus_Override(t *testing.T) {
	rec, out := serve(t, func(c *gin.Context) {
		ErrorWithStatus(c, discardLogger(), apperror.WithParam(apperror.ErrNotFound, "email", "Email Not Exist"), http.StatusBadRequest)
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", out["param"])
}
