package controllers

import (
	"net/http"
	"testing"

	"journal-editorial-api/internal/testutil"
	"journal-editorial-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notificationRouter(user models.User) *gin.Engine {
	r := gin.New()
	g := r.Group("/", authAs(user))
	g.GET("/notifications", GetNotifications)
	g.PUT("/notifications/:id/read", MarkNotificationRead)
	g.POST("/notifications/mark-all-read", MarkAllNotificationsRead)
	return r
}

func TestNotificationsEndpoint(t *testing.T) {
	db := setupDB(t)
	user := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	other := testutil.SeedUser(t, db, "Oz Other", "oz@example.org", models.RoleAuthor)

	mine := models.Notification{UserID: user.UserID, Title: "a", Message: "m", Type: "info"}
	require.NoError(t, db.Create(&mine).Error)
	theirs := models.Notification{UserID: other.UserID, Title: "b", Message: "m", Type: "info"}
	require.NoError(t, db.Create(&theirs).Error)

	r := notificationRouter(user)

	w := doJSON(t, r, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["notifications"].([]interface{}), 1)
	assert.EqualValues(t, 1, body["unread"])

	// Cannot mark someone else's notification
	w = doJSON(t, r, http.MethodPut, "/notifications/"+theirs.NotificationID+"/read", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/notifications/"+mine.NotificationID+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["unread"])
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := setupDB(t)
	user := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)

	for i := 0; i < 3; i++ {
		n := models.Notification{UserID: user.UserID, Title: "t", Message: "m", Type: "info"}
		require.NoError(t, db.Create(&n).Error)
	}

	r := notificationRouter(user)
	w := doJSON(t, r, http.MethodPost, "/notifications/mark-all-read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var unread int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.UserID, false).Count(&unread).Error)
	assert.Zero(t, unread)
}
