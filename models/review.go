package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reviewer recommendation values.
const (
	RecommendAccept   = "ACCEPT"
	RecommendRevision = "REVISION"
	RecommendReject   = "REJECT"
)

// Review is one reviewer assignment per (submission, reviewer) pair. The
// unique index is the enforcement point for the at-most-one invariant, so
// concurrent assignments cannot both insert. A review with no score is a
// pending invitation.
type Review struct {
	ReviewID       string    `gorm:"primaryKey;column:review_id;size:36" json:"review_id"`
	SubmissionID   string    `gorm:"column:submission_id;size:36;uniqueIndex:idx_submission_reviewer" json:"submission_id"`
	ReviewerID     string    `gorm:"column:reviewer_id;size:36;uniqueIndex:idx_submission_reviewer" json:"reviewer_id"`
	Score          *int      `gorm:"column:score" json:"score,omitempty"`
	Feedback       *string   `gorm:"column:feedback;type:text" json:"feedback,omitempty"`
	Recommendation *string   `gorm:"column:recommendation" json:"recommendation,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations. Reviewer identity stays on the editorial side only; author
	// responses never serialize this relation.
	Submission *Submission `gorm:"foreignKey:SubmissionID" json:"submission,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == "" {
		r.ReviewID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for Review.
func (Review) TableName() string {
	return "reviews"
}
