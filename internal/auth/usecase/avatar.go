package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	authdto "taskmanager-backend/internal/auth/dto"
	"taskmanager-backend/pkg/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedAvatarTypes maps accepted declared types to their canonical form.
var allowedAvatarTypes = map[string]string{
	"image/jpeg": "image/jpeg",
	"image/jpg":  "image/jpeg",
	"image/png":  "image/png",
	"image/gif":  "image/gif",
}

var safeExt = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// UpdateAvatar validates the upload, stores it, points the user record at it
// and only then removes the previous custom avatar. Cleanup failures are
// logged and never undo the update.
func (u *authUsecase) UpdateAvatar(ctx context.Context, userID string, upload authdto.AvatarUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", apperror.Validation("avatar", "No file uploaded")
	}
	if int64(len(upload.Data)) > u.config.MaxFileSize {
		return "", apperror.WithParam(apperror.ErrPayloadTooLarge, "avatar",
			fmt.Sprintf("File too large, maximum is %d bytes", u.config.MaxFileSize))
	}

	contentType, detected, err := avatarContentType(upload)
	if err != nil {
		return "", err
	}

	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	previous := user.Avatar

	name := avatarFileName(upload.Filename, detected.Extension())
	path, err := u.avatars.Save(ctx, name, upload.Data, contentType)
	if err != nil {
		return "", fmt.Errorf("store avatar: %w", err)
	}

	found, err := u.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": path})
	if err != nil || !found {
		// The record still points at the previous avatar; drop the orphan.
		if delErr := u.avatars.Delete(ctx, path); delErr != nil {
			u.log.WarnContext(ctx, "failed to remove orphaned avatar", "path", path, "error", delErr)
		}
		if err != nil {
			return "", err
		}
		return "", apperror.NotFound("User not found")
	}

	if u.isCustomAvatar(previous) {
		if err := u.avatars.Delete(ctx, previous); err != nil {
			u.log.WarnContext(ctx, "failed to remove previous avatar", "user_id", userID, "path", previous, "error", err)
		}
	}

	u.log.InfoContext(ctx, "avatar updated", "user_id", userID, "path", path)
	return path, nil
}

// isCustomAvatar reports whether path is an uploaded avatar this server may
// delete. The default avatar and foreign paths are never touched.
func (u *authUsecase) isCustomAvatar(path string) bool {
	if path == "" || path == u.config.DefaultAvatarPath || strings.Contains(path, "default-avatar") {
		return false
	}
	return u.avatars.Owns(path)
}

// avatarContentType checks the declared type against the allow-list and
// against the sniffed content, so a renamed non-image is rejected.
func avatarContentType(upload authdto.AvatarUpload) (string, *mimetype.MIME, error) {
	unsupported := apperror.WithParam(apperror.ErrUnsupportedMediaType, "avatar", "Only JPG, PNG and GIF images are allowed")

	detected := mimetype.Detect(upload.Data)
	sniffed, ok := allowedAvatarTypes[detected.String()]
	if !ok {
		return "", nil, unsupported
	}

	if upload.MimeType != "" {
		declared, _, _ := strings.Cut(strings.ToLower(upload.MimeType), ";")
		canonical, ok := allowedAvatarTypes[strings.TrimSpace(declared)]
		if !ok || canonical != sniffed {
			return "", nil, unsupported
		}
	}

	return sniffed, detected, nil
}

// avatarFileName builds a unique name keeping the original extension when it
// is sane, falling back to the sniffed one.
func avatarFileName(original, fallbackExt string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if !safeExt.MatchString(ext) {
		ext = fallbackExt
	}
	return fmt.Sprintf("avatar-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}
