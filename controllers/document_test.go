package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-editorial-api/internal/testutil"
	"journal-editorial-api/models"
	"journal-editorial-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRouter(user models.User) *gin.Engine {
	r := gin.New()
	r.GET("/uploads/:filename", ServeUpload)
	r.POST("/uploads", authAs(user), UploadFile)
	return r
}

func multipartUpload(t *testing.T, r http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadAndServeRoundTrip(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)

	prev := UploadStore
	UploadStore = &services.LocalStorage{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}
	t.Cleanup(func() { UploadStore = prev })

	r := uploadRouter(author)
	content := []byte("%PDF-1.4 manuscript body")

	w := multipartUpload(t, r, "manuscript.pdf", content)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	url := decodeBody(t, w)["url"].(string)
	require.Contains(t, url, "/uploads/")

	filename := url[len(url)-len("0123456789abcdef0123456789abcdef.pdf"):]
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/uploads/"+filename, nil))
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, content, w2.Body.Bytes())
}

func TestUploadRejectsWrongType(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)

	prev := UploadStore
	UploadStore = &services.LocalStorage{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}
	t.Cleanup(func() { UploadStore = prev })

	w := multipartUpload(t, uploadRouter(author), "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServeUploadUnknownFile(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)

	prev := UploadStore
	UploadStore = &services.LocalStorage{Dir: t.TempDir(), BaseURL: "http://localhost:8080"}
	t.Cleanup(func() { UploadStore = prev })

	r := uploadRouter(author)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/missing.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
