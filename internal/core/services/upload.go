package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pdfocr/internal/core/domain"
)

// ValidateUpload checks a file name and size against the upload settings.
// Returns an error wrapping domain.ErrInvalidInput when the file is rejected.
func ValidateUpload(filename string, size int64, settings domain.UploadSettings) error {
	if filename == "" {
		return fmt.Errorf("%w: no file selected", domain.ErrInvalidInput)
	}
	if !hasAllowedExtension(filename, settings.AllowedExtensions) {
		return fmt.Errorf("%w: %s: unsupported file type %q", domain.ErrInvalidInput, filename, filepath.Ext(filename))
	}
	if settings.MaxFileSize > 0 && size > settings.MaxFileSize {
		return fmt.Errorf("%w: %s: file size %d exceeds limit of %d bytes",
			domain.ErrInvalidInput, filename, size, settings.MaxFileSize)
	}
	return nil
}

// ValidateUploadFile stats path and validates it with ValidateUpload.
func ValidateUploadFile(path string, settings domain.UploadSettings) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	return ValidateUpload(filepath.Base(path), info.Size(), settings)
}
