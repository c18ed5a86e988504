// controllers/document.go
package controllers

import (
	"io"
	"net/http"

	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
)

// UploadStore is the storage dispatcher used by the upload endpoints. It is
// a package variable so tests can point it at a temporary directory.
var UploadStore services.Storage = services.DefaultStorage()

const maxUploadBytes = 20 << 20 // 20 MB

// UploadFile stores a manuscript file and returns the URL the caller should
// attach to a submission. The lifecycle never interprets the URL.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 20 MB limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	url, err := UploadStore.Upload(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     url,
	})
}

// ServeUpload streams a stored manuscript file back to the client.
func ServeUpload(c *gin.Context) {
	filename := c.Param("filename")

	path, err := UploadStore.Resolve(filename)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	c.File(path)
}
