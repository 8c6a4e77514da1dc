package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/sikabapp/sikab-backend/internal/services"
)

// fileUploads adapts multipart file headers to the service-level upload
// abstraction without reading the files up front.
func fileUploads(headers []*multipart.FileHeader) []services.FileUpload {
	uploads := make([]services.FileUpload, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		uploads = append(uploads, services.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return uploads
}

// bindPayload decodes the typed JSON "payload" part of a multipart request.
func bindPayload(c *gin.Context, dest any) bool {
	payload := c.PostForm("payload")
	if payload == "" {
		respondBadRequest(c, "Missing payload.")
		return false
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		respondBadRequest(c, "Invalid payload.")
		return false
	}
	return true
}
