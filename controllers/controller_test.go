package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"journal-editorial-api/config"
	"journal-editorial-api/internal/testutil"
	"journal-editorial-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupDB points the package-global database at an isolated test instance.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.OpenDB(t)
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

// authAs stands in for the JWT middleware and injects the identity keys the
// handlers read.
func authAs(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.UserID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
