package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/logger"
	"github.com/sikabapp/sikab-backend/internal/services"
)

// FileHandler proxies stored proof photos back same-origin so the browser
// never needs bucket credentials.
type FileHandler struct {
	log    *logger.Logger
	bucket services.BucketService
}

func NewFileHandler(bucket services.BucketService, log *logger.Logger) *FileHandler {
	return &FileHandler{log: log.With("handler", "FileHandler"), bucket: bucket}
}

// Get streams one object. The route uses a wildcard because storage keys
// contain a checkpoint prefix, e.g. security/<uuid>.jpg.
func (h *FileHandler) Get(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("fileId"), "/")
	if key == "" {
		respondBadRequest(c, "Missing file id.")
		return
	}
	rc, contentType, err := h.bucket.DownloadFile(c.Request.Context(), key)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	defer rc.Close()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "private, max-age=3600")
	c.Status(200)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		h.log.Warn("Image stream interrupted", "key", key, "error", err)
	}
}
