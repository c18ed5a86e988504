package services

import (
	"testing"
	"time"

	"journal-editorial-api/internal/testutil"
	"journal-editorial-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIssueDuplicateVolumeNumber(t *testing.T) {
	db := testutil.OpenDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	actor := Actor{ID: editor.UserID, Role: editor.Role}

	_, err := CreateIssue(db, actor, CreateIssueInput{Volume: 2, Number: 1, Year: 2026})
	require.NoError(t, err)

	_, err = CreateIssue(db, actor, CreateIssueInput{Volume: 2, Number: 1, Year: 2026})
	assert.ErrorIs(t, err, ErrConflict)

	var n int64
	require.NoError(t, db.Model(&models.Issue{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// Same volume, new number is fine
	_, err = CreateIssue(db, actor, CreateIssueInput{Volume: 2, Number: 2, Year: 2026})
	assert.NoError(t, err)
}

func TestCreateIssueValidation(t *testing.T) {
	db := testutil.OpenDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	actor := Actor{ID: editor.UserID, Role: editor.Role}

	_, err := CreateIssue(db, actor, CreateIssueInput{Volume: 0, Number: 1, Year: 2026})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateIssue(db, actor, CreateIssueInput{Volume: 1, Number: 1, Year: 1850})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateIssue(db, actor, CreateIssueInput{Volume: 1, Number: 1, Year: time.Now().Year() + 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateIssue(db, Actor{ID: author.UserID, Role: author.Role},
		CreateIssueInput{Volume: 1, Number: 1, Year: 2026})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPublishIssueIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	actor := Actor{ID: editor.UserID, Role: editor.Role}

	issue, err := CreateIssue(db, actor, CreateIssueInput{Volume: 1, Number: 1, Year: 2026})
	require.NoError(t, err)
	assert.False(t, issue.IsPublished)

	published, err := PublishIssue(db, actor, issue.IssueID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	again, err := PublishIssue(db, actor, issue.IssueID)
	require.NoError(t, err)
	assert.True(t, again.IsPublished)

	_, err = PublishIssue(db, actor, "no-such-issue")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishArticleRequiresAccepted(t *testing.T) {
	db := testutil.OpenDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	actor := Actor{ID: editor.UserID, Role: editor.Role}

	issue, err := CreateIssue(db, actor, CreateIssueInput{Volume: 1, Number: 1, Year: 2026})
	require.NoError(t, err)

	sub := seedSubmission(t, db, author.UserID, models.StatusUnderReview)
	_, err = PublishArticle(db, actor, sub.SubmissionID, issue.IssueID)
	assert.ErrorIs(t, err, ErrInvalidState)

	var stored models.Submission
	require.NoError(t, db.Where("submission_id = ?", sub.SubmissionID).First(&stored).Error)
	assert.Equal(t, models.StatusUnderReview, stored.Status)
	assert.Nil(t, stored.IssueID)
	assert.Nil(t, stored.PublishedAt)
}

func TestPublishArticleUnknownIssue(t *testing.T) {
	db := testutil.OpenDB(t)
	author := testutil.SeedUser(t, db, "Ann Author", "ann@example.org", models.RoleAuthor)
	editor := testutil.SeedUser(t, db, "Ed Editor", "ed@example.org", models.RoleEditor)
	sub := seedSubmission(t, db, author.UserID, models.StatusAccepted)

	_, err := PublishArticle(db, Actor{ID: editor.UserID, Role: editor.Role},
		sub.SubmissionID, "no-such-issue")
	assert.ErrorIs(t, err, ErrNotFound)

	var stored models.Submission
	require.NoError(t, db.Where("submission_id = ?", sub.SubmissionID).First(&stored).Error)
	assert.Equal(t, models.StatusAccepted, stored.Status)
}
