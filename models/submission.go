package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission status values. Only the transitions registered in the
// lifecycle table (services package) are legal between them.
const (
	StatusDraft             = "DRAFT"
	StatusSubmitted         = "SUBMITTED"
	StatusUnderReview       = "UNDER_REVIEW"
	StatusRevisionRequested = "REVISION_REQUESTED"
	StatusAccepted          = "ACCEPTED"
	StatusRejected          = "REJECTED"
	StatusPublished         = "PUBLISHED"
)

// CoAuthor is a structured co-author entry stored as JSON on the submission.
type CoAuthor struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation"`
}

type Submission struct {
	SubmissionID    string  `gorm:"primaryKey;column:submission_id;size:36" json:"submission_id"`
	Title           string  `gorm:"column:title" json:"title"`
	Abstract        string  `gorm:"column:abstract;type:text" json:"abstract"`
	Keywords        *string `gorm:"column:keywords" json:"keywords,omitempty"`
	FileURL         *string `gorm:"column:file_url" json:"file_url,omitempty"`
	Status          string  `gorm:"column:status;index" json:"status"`
	AuthorID        string  `gorm:"column:author_id;size:36;index" json:"author_id"`
	IssueID         *string `gorm:"column:issue_id;size:36" json:"issue_id,omitempty"`
	ManualIssueText *string `gorm:"column:manual_issue_text" json:"manual_issue_text,omitempty"`

	// Display overrides used by the manual-publish path: when DisplayAuthor
	// is set, the public article shows these literal fields instead of the
	// linked user. Resolved at read time, never merged at write time.
	DisplayAuthor      *string    `gorm:"column:display_author" json:"display_author,omitempty"`
	DisplayAffiliation *string    `gorm:"column:display_affiliation" json:"display_affiliation,omitempty"`
	OtherAuthors       []CoAuthor `gorm:"column:other_authors;serializer:json" json:"other_authors,omitempty"`
	ManualKeywords     []string   `gorm:"column:manual_keywords;serializer:json" json:"manual_keywords,omitempty"`
	ReferencesText     *string    `gorm:"column:references_text;type:text" json:"references_text,omitempty"`

	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`

	// Relations
	Author  *User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Issue   *Issue              `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
	History []SubmissionHistory `gorm:"foreignKey:SubmissionID" json:"history,omitempty"`
	Reviews []Review            `gorm:"foreignKey:SubmissionID" json:"reviews,omitempty"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.SubmissionID == "" {
		s.SubmissionID = uuid.NewString()
	}
	return nil
}

// DisplayedAuthor resolves the authorship variant: manual-publish overrides
// win, otherwise the linked user's name is shown.
func (s *Submission) DisplayedAuthor() string {
	if s.DisplayAuthor != nil && *s.DisplayAuthor != "" {
		return *s.DisplayAuthor
	}
	if s.Author != nil {
		return s.Author.Name
	}
	return ""
}

// DisplayedAffiliation resolves the affiliation the same way.
func (s *Submission) DisplayedAffiliation() string {
	if s.DisplayAuthor != nil && *s.DisplayAuthor != "" {
		if s.DisplayAffiliation != nil {
			return *s.DisplayAffiliation
		}
		return ""
	}
	if s.Author != nil && s.Author.Affiliation != nil {
		return *s.Author.Affiliation
	}
	return ""
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}
