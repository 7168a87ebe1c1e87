package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
)

// Upload errors
var (
	ErrMissingFile         = errors.New("file field is required")
	ErrUnsupportedFileType = errors.New("only .txt files are accepted")
	ErrFileTooLarge        = errors.New("file is too large")
)

// AllowedExtensions lists the accepted upload extensions
var AllowedExtensions = map[string]bool{
	".txt": true,
}

// ExtractUUIDParam extracts and parses a UUID parameter from the URL path.
// Returns the parsed UUID or an error if the parameter is invalid.
func ExtractUUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	idStr := c.Param(param)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", param, err)
	}
	return id, nil
}

// ParseSaveFlag reads the optional ?save= query flag. A missing flag means false.
func ParseSaveFlag(c *gin.Context) (bool, error) {
	raw := c.Query("save")
	if raw == "" {
		return false, nil
	}
	save, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid save flag %q: %w", raw, err)
	}
	return save, nil
}

// IsAllowedFile reports whether name carries an accepted extension
func IsAllowedFile(name string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// ReadUploadFile reads the multipart file field into memory, rejecting
// unsupported extensions and files larger than maxBytes.
func ReadUploadFile(c *gin.Context, maxBytes int64) (*entity.UploadFile, error) {
	header, err := c.FormFile(entity.FileFieldName)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, ErrMissingFile
	}

	name := filepath.Base(header.Filename)
	if !IsAllowedFile(name) {
		return nil, ErrUnsupportedFileType
	}
	if header.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(content)) > maxBytes {
		return nil, ErrFileTooLarge
	}

	return entity.NewUploadFile(name, content), nil
}
