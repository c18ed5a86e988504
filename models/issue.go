package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue is a publication container. (volume, number) is unique at the
// storage layer; publishing flips IsPublished and has no reversal path.
type Issue struct {
	IssueID     string    `gorm:"primaryKey;column:issue_id;size:36" json:"issue_id"`
	Volume      int       `gorm:"column:volume;uniqueIndex:idx_volume_number" json:"volume"`
	Number      int       `gorm:"column:number;uniqueIndex:idx_volume_number" json:"number"`
	Year        int       `gorm:"column:year" json:"year"`
	Title       *string   `gorm:"column:title" json:"title,omitempty"`
	IsPublished bool      `gorm:"column:is_published" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Submissions []Submission `gorm:"foreignKey:IssueID" json:"submissions,omitempty"`
}

func (i *Issue) BeforeCreate(tx *gorm.DB) error {
	if i.IssueID == "" {
		i.IssueID = uuid.NewString()
	}
	return nil
}

// TableName overrides
func (Issue) TableName() string {
	return "issues"
}
