package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	NotificationID      string    `gorm:"primaryKey;column:notification_id;size:36" json:"notification_id"`
	UserID              string    `gorm:"column:user_id;size:36;index" json:"user_id"`
	Title               string    `gorm:"column:title" json:"title"`
	Message             string    `gorm:"column:message" json:"message"`
	Type                string    `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedSubmissionID *string   `gorm:"column:related_submission_id;size:36" json:"related_submission_id,omitempty"`
	IsRead              bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == "" {
		n.NotificationID = uuid.NewString()
	}
	return nil
}

func (Notification) TableName() string { return "notifications" }
