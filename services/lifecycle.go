package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"journal-editorial-api/models"
	"journal-editorial-api/utils"

	"gorm.io/gorm"
)

// transitionKey identifies one edge of the submission state machine.
type transitionKey struct {
	From string
	To   string
}

// transitionRule describes who may walk an edge and what lands in the
// history ledger when the caller supplies no comment.
type transitionRule struct {
	// OwnerOnly edges belong to the submission's author; everything else is
	// editorial (EDITOR or ADMIN).
	OwnerOnly      bool
	DefaultComment string
}

// transitionTable is the complete set of legal transitions. Any (from, to)
// pair not listed here is rejected with ErrInvalidState; the engine never
// coerces an illegal request into a no-op.
var transitionTable = map[transitionKey]transitionRule{
	{models.StatusDraft, models.StatusSubmitted}:              {OwnerOnly: true, DefaultComment: "Initial creation"},
	{models.StatusSubmitted, models.StatusUnderReview}:        {DefaultComment: "Approved for review"},
	{models.StatusSubmitted, models.StatusRejected}:           {DefaultComment: "Rejected during vetting"},
	{models.StatusUnderReview, models.StatusAccepted}:         {DefaultComment: "Decision: ACCEPT"},
	{models.StatusUnderReview, models.StatusRejected}:         {DefaultComment: "Decision: REJECT"},
	{models.StatusUnderReview, models.StatusRevisionRequested}: {DefaultComment: "Decision: REVISION"},
	{models.StatusRevisionRequested, models.StatusUnderReview}: {OwnerOnly: true, DefaultComment: "Revision uploaded by author"},
	{models.StatusAccepted, models.StatusPublished}:           {DefaultComment: "Published to issue"},
}

// targetReachable reports whether any edge ends at status, and whether any
// such edge is owner-walkable. Used to gate roles before touching the row.
func targetReachable(status string) (reachable, ownerEdge bool) {
	for key, rule := range transitionTable {
		if key.To == status {
			reachable = true
			if rule.OwnerOnly {
				ownerEdge = true
			}
		}
	}
	return reachable, ownerEdge
}

// TransitionRequest is one requested status change.
type TransitionRequest struct {
	SubmissionID string
	Target       string
	Actor        Actor
	Comment      string
	// Set carries extra column writes that must land atomically with the
	// status change (new file URL on revision, issue reference on publish).
	Set map[string]interface{}
}

// TransitionSubmission validates the requested transition against the
// current state and the acting user, applies it with compare-and-swap
// semantics, and appends the matching history entry in the same
// transaction. Both writes commit together or not at all.
func TransitionSubmission(db *gorm.DB, req TransitionRequest) (*models.Submission, error) {
	reachable, ownerEdge := targetReachable(req.Target)
	if !reachable {
		return nil, fmt.Errorf("%w: no transition leads to %s", ErrInvalidState, req.Target)
	}
	// Role gate before any data access: when no edge into the target is
	// owner-walkable, a non-editorial actor fails identically whether or
	// not the submission exists.
	if !ownerEdge {
		if err := RequireEditorial(req.Actor); err != nil {
			return nil, err
		}
	}

	var submission models.Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_id = ?", req.SubmissionID).First(&submission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: submission %s", ErrNotFound, req.SubmissionID)
			}
			return err
		}

		rule, ok := transitionTable[transitionKey{submission.Status, req.Target}]
		if !ok {
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidState, submission.Status, req.Target)
		}

		if rule.OwnerOnly {
			if err := RequireOwner(req.Actor, submission.AuthorID); err != nil {
				return err
			}
		} else if err := RequireEditorial(req.Actor); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":     req.Target,
			"updated_at": now,
		}
		for col, val := range req.Set {
			updates[col] = val
		}

		// Compare-and-swap: the update only lands if the row still holds the
		// status we validated against, so two concurrent decisions cannot
		// both apply.
		res := tx.Model(&models.Submission{}).
			Where("submission_id = ? AND status = ?", submission.SubmissionID, submission.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: submission %s is no longer %s", ErrInvalidState, submission.SubmissionID, submission.Status)
		}

		if err := appendHistory(tx, submission.SubmissionID, req.Target, req.Actor.ID, req.Comment, rule.DefaultComment, now); err != nil {
			return err
		}

		submission.Status = req.Target
		submission.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// appendHistory writes one ledger row. It must only ever run inside the
// transaction that carries the paired status write.
func appendHistory(tx *gorm.DB, submissionID, status, actorID, comment, fallback string, at time.Time) error {
	text := strings.TrimSpace(comment)
	if text == "" {
		text = fallback
	}
	entry := models.SubmissionHistory{
		SubmissionID: submissionID,
		Status:       status,
		ChangedBy:    actorID,
		CreatedAt:    at,
	}
	if text != "" {
		entry.Comment = &text
	}
	return tx.Create(&entry).Error
}

// ListHistory returns the ledger for a submission, newest first for
// presentation. The rows themselves are stored in creation order and are
// never updated or deleted.
func ListHistory(db *gorm.DB, submissionID string) ([]models.SubmissionHistory, error) {
	var entries []models.SubmissionHistory
	err := db.Where("submission_id = ?", submissionID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// CreateSubmissionInput is the author-side creation payload.
type CreateSubmissionInput struct {
	Title          string
	Abstract       string
	Keywords       *string
	FileURL        *string
	OtherAuthors   []models.CoAuthor
	ReferencesText *string
	Status         string // DRAFT or SUBMITTED; empty means DRAFT
}

// CreateSubmission creates a submission owned by the actor. Creating as
// SUBMITTED logs the "Initial creation" ledger entry in the same
// transaction; a draft logs nothing until the author submits it.
func CreateSubmission(db *gorm.DB, actor Actor, input CreateSubmissionInput) (*models.Submission, error) {
	title := utils.SanitizeInput(input.Title)
	abstract := utils.SanitizeInput(input.Abstract)
	if title == "" || abstract == "" {
		return nil, fmt.Errorf("%w: title and abstract are required", ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if status != models.StatusDraft && status != models.StatusSubmitted {
		return nil, fmt.Errorf("%w: initial status must be DRAFT or SUBMITTED", ErrValidation)
	}

	submission := models.Submission{
		Title:          title,
		Abstract:       abstract,
		Keywords:       input.Keywords,
		FileURL:        input.FileURL,
		Status:         status,
		AuthorID:       actor.ID,
		OtherAuthors:   input.OtherAuthors,
		ReferencesText: input.ReferencesText,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return translateDBError(err)
		}
		if status == models.StatusSubmitted {
			return appendHistory(tx, submission.SubmissionID, status, actor.ID, "", "Initial creation", time.Now())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ManualPublishInput is the editor-side escape hatch for back-catalog and
// non-peer-reviewed content. It stays a separate creation path from the
// peer-reviewed one.
type ManualPublishInput struct {
	Title              string
	Abstract           string
	FileURL            string
	IssueID            *string
	ManualIssueText    *string
	DisplayAuthor      string
	DisplayAffiliation *string
	OtherAuthors       []models.CoAuthor
	ReferencesText     *string
	ManualKeywords     []string
	PublishedAt        *time.Time
}

// ManualPublish creates a submission already in PUBLISHED status, bypassing
// review entirely. No history entry is written and no review fields are
// touched. A published work must carry an issue reference or a manual issue
// label, never neither.
func ManualPublish(db *gorm.DB, actor Actor, input ManualPublishInput) (*models.Submission, error) {
	if err := RequireEditorial(actor); err != nil {
		return nil, err
	}

	title := utils.SanitizeInput(input.Title)
	abstract := utils.SanitizeInput(input.Abstract)
	fileURL := strings.TrimSpace(input.FileURL)
	displayAuthor := utils.SanitizeInput(input.DisplayAuthor)
	if title == "" || abstract == "" || fileURL == "" {
		return nil, fmt.Errorf("%w: title, abstract and file are required", ErrValidation)
	}
	if displayAuthor == "" {
		return nil, fmt.Errorf("%w: author name is required", ErrValidation)
	}

	hasIssue := input.IssueID != nil && strings.TrimSpace(*input.IssueID) != ""
	hasLabel := input.ManualIssueText != nil && strings.TrimSpace(*input.ManualIssueText) != ""
	if !hasIssue && !hasLabel {
		return nil, fmt.Errorf("%w: specify an issue or enter issue details", ErrValidation)
	}
	if hasLabel {
		label := strings.TrimSpace(*input.ManualIssueText)
		if len(label) < 5 || len(label) > 200 {
			return nil, fmt.Errorf("%w: issue details must be 5-200 characters", ErrValidation)
		}
	}

	publishedAt := time.Now()
	if input.PublishedAt != nil {
		publishedAt = *input.PublishedAt
	}

	submission := models.Submission{
		Title:              title,
		Abstract:           abstract,
		FileURL:            &fileURL,
		Status:             models.StatusPublished,
		AuthorID:           actor.ID, // placeholder owner; display fields carry the real authorship
		ManualIssueText:    input.ManualIssueText,
		DisplayAuthor:      &displayAuthor,
		DisplayAffiliation: input.DisplayAffiliation,
		OtherAuthors:       input.OtherAuthors,
		ReferencesText:     input.ReferencesText,
		ManualKeywords:     input.ManualKeywords,
		PublishedAt:        &publishedAt,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if hasIssue {
			var issue models.Issue
			if err := tx.Where("issue_id = ?", *input.IssueID).First(&issue).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: issue %s", ErrNotFound, *input.IssueID)
				}
				return err
			}
			submission.IssueID = &issue.IssueID
		}
		return translateDBError(tx.Create(&submission).Error)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
