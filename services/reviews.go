package services

import (
	"errors"
	"fmt"
	"strings"

	"journal-editorial-api/models"

	"gorm.io/gorm"
)

// AssignReviewer creates the pending review row for (submission, reviewer).
// The unique index makes concurrent duplicate assignments resolve to one
// success and ErrConflict for the rest. Assignment does not touch the
// submission's status or history.
func AssignReviewer(db *gorm.DB, actor Actor, submissionID, reviewerID string) (*models.Review, error) {
	if err := RequireEditorial(actor); err != nil {
		return nil, err
	}

	var submission models.Submission
	if err := db.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		}
		return nil, err
	}

	var reviewer models.User
	if err := db.Where("user_id = ? AND deleted_at IS NULL", reviewerID).First(&reviewer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reviewer %s", ErrNotFound, reviewerID)
		}
		return nil, err
	}
	if reviewer.Role != models.RoleReviewer {
		return nil, fmt.Errorf("%w: user %s does not hold the reviewer role", ErrValidation, reviewerID)
	}

	review := models.Review{
		SubmissionID: submission.SubmissionID,
		ReviewerID:   reviewer.UserID,
	}
	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: reviewer already assigned", ErrConflict)
		}
		return nil, err
	}
	review.Reviewer = &reviewer
	review.Submission = &submission
	return &review, nil
}

// RemoveReviewer hard-deletes the review row. This is the one place state is
// destroyed rather than appended: no history entry records the removal.
func RemoveReviewer(db *gorm.DB, actor Actor, reviewID string) error {
	if err := RequireEditorial(actor); err != nil {
		return err
	}

	res := db.Where("review_id = ?", reviewID).Delete(&models.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
	}
	return nil
}

// SubmitReviewInput is the reviewer's evaluation.
type SubmitReviewInput struct {
	Score          int
	Feedback       string
	Recommendation string
}

// SubmitReview records the assigned reviewer's evaluation. It never
// transitions the submission; acting on the recommendation is a separate
// editorial decision.
func SubmitReview(db *gorm.DB, actor Actor, reviewID string, input SubmitReviewInput) (*models.Review, error) {
	if err := Authorize(actor, []string{models.RoleReviewer}, nil); err != nil {
		return nil, err
	}

	if input.Score < 1 || input.Score > 10 {
		return nil, fmt.Errorf("%w: score must be between 1 and 10", ErrValidation)
	}
	feedback := strings.TrimSpace(input.Feedback)
	if len(feedback) < 10 {
		return nil, fmt.Errorf("%w: feedback must be at least 10 characters", ErrValidation)
	}
	switch input.Recommendation {
	case models.RecommendAccept, models.RecommendRevision, models.RecommendReject:
	default:
		return nil, fmt.Errorf("%w: unknown recommendation %q", ErrValidation, input.Recommendation)
	}

	var review models.Review
	if err := db.Where("review_id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review %s", ErrNotFound, reviewID)
		}
		return nil, err
	}
	if review.ReviewerID != actor.ID {
		return nil, fmt.Errorf("%w: review belongs to another reviewer", ErrUnauthorized)
	}

	updates := map[string]interface{}{
		"score":          input.Score,
		"feedback":       feedback,
		"recommendation": input.Recommendation,
	}
	if err := db.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}

	review.Score = &input.Score
	review.Feedback = &feedback
	rec := input.Recommendation
	review.Recommendation = &rec
	return &review, nil
}
