package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	authdelivery "taskmanager-backend/internal/auth/delivery"
	authUsecase "taskmanager-backend/internal/auth/usecase"
	taskDelivery "taskmanager-backend/internal/task/delivery"
	taskUsecasePkg "taskmanager-backend/internal/task/usecase"
	"taskmanager-backend/pkg/config"
	"taskmanager-backend/pkg/logger"
	"taskmanager-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

var allowedHeaders = strings.Join([]string{
	"Content-Type", "Content-Length", "Accept-Encoding", "Authorization",
	"accept", "origin", "Cache-Control", "X-Requested-With",
	authdelivery.TokenHeader, "user-id",
}, ", ")

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	avatars     storage.Storage
	config      *config.Config
	log         *slog.Logger
	authHandler *authdelivery.AuthHandler
	taskHandler *taskDelivery.TaskHandler
}

func NewHandler(authUc authUsecase.AuthUsecase, taskUc taskUsecasePkg.TaskUsecase, avatars storage.Storage, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		authUsecase: authUc,
		avatars:     avatars,
		config:      cfg,
		log:         log,
		authHandler: authdelivery.NewAuthHandler(authUc, cfg.MaxFileSize, log),
		taskHandler: taskDelivery.NewTaskHandler(taskUc, log),
	}
}

// Engine builds the gin engine with middleware, static assets and routes.
func (h *Handler) Engine() *gin.Engine {
	if h.config.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(h.log), h.cors())

	// Avatars are served from disk only for the local backend; S3 URLs are absolute.
	if local, ok := h.avatars.(*storage.Local); ok {
		r.Static(local.URLPrefix(), local.Dir())
	}

	SetupRoutes(r, h.authUsecase, h.authHandler, h.taskHandler)

	r.NoRoute(h.publicFiles)
	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (h *Handler) cors() gin.HandlerFunc {
	allowAll := slices.Contains(h.config.ClientURLs, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(h.config.ClientURLs, origin)) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// publicFiles serves assets such as the default avatar from the public
// directory; anything else is a JSON 404.
func (h *Handler) publicFiles(c *gin.Context) {
	if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
		name := path.Clean("/" + c.Request.URL.Path)
		full := filepath.Join(h.config.PublicDir, filepath.FromSlash(name))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
}
