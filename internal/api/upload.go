package api

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"swiftcart-backend/internal/logger"
)

// savePhoto stores the multipart "photo" field under dir with a generated
// filename, keeping the original extension. The returned path is what gets
// persisted on the product and served statically.
func savePhoto(c *gin.Context, dir string) (string, error) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", errBadRequest("Please Add Photo")
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// removePhoto deletes a stored photo as a best-effort cleanup. Failures are
// logged and never surface to the request.
func removePhoto(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		logger.Error("failed to remove photo "+path, err)
	}
}
