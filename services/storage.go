package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists manuscript binaries and returns a retrievable URL. The
// lifecycle only ever stores the returned URL string; provider internals
// stay behind this interface.
type Storage interface {
	Upload(data []byte, originalName, contentType string) (url string, err error)
	// Resolve maps a stored filename back to a local path for serving, or
	// returns an error when the name does not resolve.
	Resolve(filename string) (string, error)
}

// LocalStorage stores files on disk under Dir, named by content hash so
// repeated uploads of the same manuscript collide harmlessly.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

// DefaultStorage builds the storage from UPLOAD_PATH and PUBLIC_API_URL.
func DefaultStorage() *LocalStorage {
	dir := os.Getenv("UPLOAD_PATH")
	if dir == "" {
		dir = "./uploads"
	}
	base := os.Getenv("PUBLIC_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &LocalStorage{Dir: dir, BaseURL: base}
}

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func (s *LocalStorage) Upload(data []byte, originalName, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrValidation)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("%w: file type %q not allowed", ErrValidation, ext)
	}

	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	sum := sha256.Sum256(data)
	filename := hex.EncodeToString(sum[:16]) + ext
	fullPath := filepath.Join(s.Dir, filename)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.BaseURL + "/api/v1/uploads/" + filename, nil
}

func (s *LocalStorage) Resolve(filename string) (string, error) {
	// Reject anything that could escape the upload directory.
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("%w: file %q", ErrNotFound, filename)
	}
	fullPath := filepath.Join(s.Dir, filename)
	if _, err := os.Stat(fullPath); err != nil {
		return "", fmt.Errorf("%w: file %q", ErrNotFound, filename)
	}
	return fullPath, nil
}
