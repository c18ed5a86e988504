package services

import (
	"errors"
	"fmt"
	"time"

	"journal-editorial-api/models"

	"gorm.io/gorm"
)

// CreateIssueInput is the editor-side issue creation payload.
type CreateIssueInput struct {
	Volume int
	Number int
	Year   int
	Title  *string
}

// CreateIssue creates a draft issue. The (volume, number) uniqueness
// invariant is held by the unique index, so a duplicate surfaces as
// ErrConflict and creates no row even under concurrent calls.
func CreateIssue(db *gorm.DB, actor Actor, input CreateIssueInput) (*models.Issue, error) {
	if err := RequireEditorial(actor); err != nil {
		return nil, err
	}
	if input.Volume <= 0 || input.Number <= 0 {
		return nil, fmt.Errorf("%w: volume and number must be positive", ErrValidation)
	}
	if input.Year < 1900 || input.Year > time.Now().Year()+1 {
		return nil, fmt.Errorf("%w: year %d is out of range", ErrValidation, input.Year)
	}

	issue := models.Issue{
		Volume: input.Volume,
		Number: input.Number,
		Year:   input.Year,
		Title:  input.Title,
	}
	if err := db.Create(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: issue %d(%d) already exists", ErrConflict, input.Volume, input.Number)
		}
		return nil, err
	}
	return &issue, nil
}

// PublishIssue flips the issue's published flag. There is no unpublish;
// calling this on an already-published issue is a no-op.
func PublishIssue(db *gorm.DB, actor Actor, issueID string) (*models.Issue, error) {
	if err := RequireEditorial(actor); err != nil {
		return nil, err
	}

	var issue models.Issue
	if err := db.Where("issue_id = ?", issueID).First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %s", ErrNotFound, issueID)
		}
		return nil, err
	}

	if !issue.IsPublished {
		if err := db.Model(&issue).Update("is_published", true).Error; err != nil {
			return nil, err
		}
		issue.IsPublished = true
	}
	return &issue, nil
}

// PublishArticle attaches an accepted submission to an issue and moves it to
// PUBLISHED. The issue reference, publication timestamp, status write and
// history entry all land in the one lifecycle transaction.
func PublishArticle(db *gorm.DB, actor Actor, submissionID, issueID string) (*models.Submission, error) {
	if err := RequireEditorial(actor); err != nil {
		return nil, err
	}

	var issue models.Issue
	if err := db.Where("issue_id = ?", issueID).First(&issue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %s", ErrNotFound, issueID)
		}
		return nil, err
	}

	now := time.Now()
	return TransitionSubmission(db, TransitionRequest{
		SubmissionID: submissionID,
		Target:       models.StatusPublished,
		Actor:        actor,
		Set: map[string]interface{}{
			"issue_id":     issue.IssueID,
			"published_at": now,
		},
	})
}
