package delivery

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	authdto "taskmanager-backend/internal/auth/dto"
	"taskmanager-backend/internal/auth/usecase"
	"taskmanager-backend/pkg/apperror"
	"taskmanager-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the /api/users routes
type AuthHandler struct {
	authUsecase   usecase.AuthUsecase
	maxAvatarSize int64
	log           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, maxAvatarSize int64, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		maxAvatarSize: maxAvatarSize,
		log:           log,
	}
}

// Register creates an account
// POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login authenticates a user and returns a token
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		// Unknown email and wrong password are both a 400 tagged with the field.
		if errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrInvalidCredential) {
			response.ErrorWithStatus(c, h.log, err, http.StatusBadRequest)
			return
		}
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
// GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.GetProfile(c.Request.Context(), UserID(c))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes name and age
// PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), UserID(c), &req)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateAvatar replaces the user's avatar with the uploaded image
// POST /api/users/avatar (multipart field "avatar")
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	// Leave room for the multipart envelope around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxAvatarSize+1<<20)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, h.log, apperror.WithParam(apperror.ErrPayloadTooLarge, "avatar", "File too large"))
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "No file uploaded", "param": "avatar"})
		return
	}

	if fileHeader.Size > h.maxAvatarSize {
		response.Error(c, h.log, apperror.WithParam(apperror.ErrPayloadTooLarge, "avatar", "File too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, h.log, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxAvatarSize+1))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	path, err := h.authUsecase.UpdateAvatar(c.Request.Context(), UserID(c), authdto.AvatarUpload{
		Data:     data,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Filename: fileHeader.Filename,
	})
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, authdto.AvatarResponse{
		Avatar:  path,
		Message: "Avatar updated successfully",
	})
}
