package services

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxUploadBytes = 5 * 1024 * 1024

var acceptedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
}

// FileUpload is one incoming proof file, decoupled from the HTTP layer so
// services and tests never touch multipart directly.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func validateUploads(field string, uploads []FileUpload, ve *ValidationError) {
	for i, up := range uploads {
		if up.Size > maxUploadBytes {
			ve.Add(fmt.Sprintf("%s.%d", field, i), "File exceeds the 5MB limit.")
		}
		if !acceptedUploadTypes[strings.ToLower(up.ContentType)] {
			ve.Add(fmt.Sprintf("%s.%d", field, i), "Unsupported file format (.jpg, .png, .webp, .mp4, .webm).")
		}
	}
}

// storageKey builds the opaque object key for an upload. Files are referenced
// by this key only; original names are kept as display metadata.
func storageKey(prefix, fileName string) string {
	return prefix + "/" + uuid.New().String() + strings.ToLower(path.Ext(fileName))
}
