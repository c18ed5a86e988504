package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionHistory is the append-only status ledger. Rows are created
// inside the same transaction as the status write and are never updated
// or deleted afterwards.
type SubmissionHistory struct {
	HistoryID    string    `gorm:"primaryKey;column:history_id;size:36" json:"history_id"`
	SubmissionID string    `gorm:"column:submission_id;size:36;index" json:"submission_id"`
	Status       string    `gorm:"column:status" json:"status"`
	ChangedBy    string    `gorm:"column:changed_by;size:36" json:"changed_by"`
	Comment      *string   `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (h *SubmissionHistory) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == "" {
		h.HistoryID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table for SubmissionHistory.
func (SubmissionHistory) TableName() string {
	return "submission_history"
}
