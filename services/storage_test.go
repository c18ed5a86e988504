package services

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	return &LocalStorage{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}
}

func TestUploadNamesByContentHash(t *testing.T) {
	store := newTestStorage(t)
	data := []byte("%PDF-1.4 manuscript body")

	url, err := store.Upload(data, "manuscript.pdf", "application/pdf")
	require.NoError(t, err)

	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:16]) + ".pdf"
	assert.Equal(t, "http://localhost:8080/api/v1/uploads/"+want, url)

	stored, err := os.ReadFile(filepath.Join(store.Dir, want))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	// Re-uploading the same bytes lands on the same name
	again, err := store.Upload(data, "renamed.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, url, again)
}

func TestUploadRejectsDisallowedTypes(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Upload([]byte("#!/bin/sh"), "script.sh", "text/x-sh")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Upload([]byte("<html>"), "page.html", "text/html")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Upload(nil, "empty.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrValidation)

	entries, err := os.ReadDir(store.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveRejectsPathEscape(t *testing.T) {
	store := newTestStorage(t)
	url, err := store.Upload([]byte("doc body here"), "paper.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	require.NoError(t, err)
	filename := filepath.Base(url)

	path, err := store.Resolve(filename)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, filename), path)

	for _, bad := range []string{
		"",
		"../secrets.txt",
		"a/../../etc/passwd",
		".hidden",
		"missing.pdf",
	} {
		_, err := store.Resolve(bad)
		assert.ErrorIs(t, err, ErrNotFound, "name %q", bad)
	}
}
