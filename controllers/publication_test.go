package controllers

import (
	"net/http"
	"testing"
	"time"

	"journal-editorial-api/internal/testutil"
	"journal-editorial-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publicationRouter(user models.User) *gin.Engine {
	r := gin.New()
	r.GET("/issues", GetPublishedIssues)
	r.GET("/issues/:id", GetIssue)
	r.GET("/articles/:id", GetArticle)
	r.GET("/search", SearchArticles)

	g := r.Group("/", authAs(user))
	g.POST("/issues", CreateIssue)
	g.POST("/issues/:id/publish", PublishIssue)
	g.GET("/editor/issues", GetAllIssues)
	g.POST("/submissions/:id/publish", PublishArticle)
	g.POST("/manual-publish", ManualPublish)
	return r
}

func TestCreateIssueEndpointConflict(t *testing.T) {
	db := setupDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	r := publicationRouter(editor)

	w := doJSON(t, r, http.MethodPost, "/issues", gin.H{"volume": 4, "number": 2, "year": 2026})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/issues", gin.H{"volume": 4, "number": 2, "year": 2026})
	assert.Equal(t, http.StatusConflict, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.Issue{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestPublicArchiveHidesDrafts(t *testing.T) {
	db := setupDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	r := publicationRouter(editor)

	draft := models.Issue{Volume: 1, Number: 1, Year: 2025}
	require.NoError(t, db.Create(&draft).Error)
	published := models.Issue{Volume: 1, Number: 2, Year: 2025, IsPublished: true}
	require.NoError(t, db.Create(&published).Error)

	w := doJSON(t, r, http.MethodGet, "/issues", nil)
	require.Equal(t, http.StatusOK, w.Code)
	issues := decodeBody(t, w)["issues"].([]interface{})
	require.Len(t, issues, 1)

	// The draft is invisible on the public detail endpoint too
	w = doJSON(t, r, http.MethodGet, "/issues/"+draft.IssueID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodGet, "/issues/"+published.IssueID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The editorial listing sees both
	w = doJSON(t, r, http.MethodGet, "/editor/issues", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["issues"].([]interface{}), 2)
}

func TestPublishArticleEndpoint(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	r := publicationRouter(editor)

	issue := models.Issue{Volume: 2, Number: 1, Year: 2026}
	require.NoError(t, db.Create(&issue).Error)
	sub := models.Submission{
		Title: "On Testing", Abstract: "A study.", Status: models.StatusAccepted,
		AuthorID: author.UserID,
	}
	require.NoError(t, db.Create(&sub).Error)

	w := doJSON(t, r, http.MethodPost, "/submissions/"+sub.SubmissionID+"/publish",
		gin.H{"issue_id": issue.IssueID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Submission
	require.NoError(t, db.Where("submission_id = ?", sub.SubmissionID).First(&stored).Error)
	assert.Equal(t, models.StatusPublished, stored.Status)
	require.NotNil(t, stored.IssueID)
	assert.Equal(t, issue.IssueID, *stored.IssueID)

	// Publishing twice conflicts
	w = doJSON(t, r, http.MethodPost, "/submissions/"+sub.SubmissionID+"/publish",
		gin.H{"issue_id": issue.IssueID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestManualPublishEndpointAndArticleView(t *testing.T) {
	db := setupDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	r := publicationRouter(editor)

	w := doJSON(t, r, http.MethodPost, "/manual-publish", gin.H{
		"title":             "Legacy Article",
		"abstract":          "From the back catalog.",
		"file_url":          "https://files.example.org/legacy.pdf",
		"manual_issue_text": "Volume 3, Issue 2 (1998)",
		"display_author":    "P. Emeritus",
		"published_at":      time.Date(1998, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sub := decodeBody(t, w)["submission"].(map[string]interface{})
	id := sub["submission_id"].(string)

	// Public article view resolves the manual authorship
	w = doJSON(t, r, http.MethodGet, "/articles/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	article := decodeBody(t, w)["article"].(map[string]interface{})
	assert.Equal(t, "P. Emeritus", article["author"])
	assert.Equal(t, "Volume 3, Issue 2 (1998)", article["manual_issue_text"])

	// Authors cannot reach the escape hatch
	w = doJSON(t, publicationRouter(author), http.MethodPost, "/manual-publish", gin.H{
		"title":             "Sneaky",
		"abstract":          "x",
		"file_url":          "https://files.example.org/x.pdf",
		"manual_issue_text": "Volume 1, Issue 1 (2001)",
		"display_author":    "Me",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestArticleViewOnlyServesPublished(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	r := publicationRouter(editor)

	sub := models.Submission{
		Title: "Hidden", Abstract: "Not yet public.", Status: models.StatusUnderReview,
		AuthorID: author.UserID,
	}
	require.NoError(t, db.Create(&sub).Error)

	w := doJSON(t, r, http.MethodGet, "/articles/"+sub.SubmissionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchArticles(t *testing.T) {
	db := setupDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	r := publicationRouter(editor)

	now := time.Now()
	kw := "pedagogy, classrooms"
	published := models.Submission{
		Title: "Digital Pedagogy", Abstract: "Teaching online.", Keywords: &kw,
		Status: models.StatusPublished, AuthorID: author.UserID, PublishedAt: &now,
	}
	require.NoError(t, db.Create(&published).Error)
	unpublished := models.Submission{
		Title: "Pedagogy Draft", Abstract: "x", Status: models.StatusUnderReview,
		AuthorID: author.UserID,
	}
	require.NoError(t, db.Create(&unpublished).Error)

	w := doJSON(t, r, http.MethodGet, "/search?q=pedagogy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	// Keyword match counts too
	w = doJSON(t, r, http.MethodGet, "/search?q=classrooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	// Empty query returns an empty result, not everything
	w = doJSON(t, r, http.MethodGet, "/search", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["total"])
}
