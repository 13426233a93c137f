package model

import (
	"time"
)

// AdminAction enumerates the governance actions that appear in the audit log.
type AdminAction string

const (
	ActionApproveApplication AdminAction = "approve_application"
	ActionDeclineApplication AdminAction = "decline_application"
	ActionArchiveApplication AdminAction = "archive_application"
	ActionDismissReports     AdminAction = "dismiss_reports"
	ActionDeleteReview       AdminAction = "delete_review"
	ActionConvertToAdmin     AdminAction = "convert_to_admin"
)

// AdminLogEntry is one append-only audit record. No code path updates or
// deletes rows in this table.
type AdminLogEntry struct {
	ID         uint        `gorm:"primarykey" json:"id"`
	AdminID    uint        `gorm:"not null;index" json:"admin_id"`
	Admin      User        `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Action     AdminAction `gorm:"type:varchar(40);not null;index" json:"action"`
	EntityType string      `gorm:"type:varchar(40);not null" json:"entity_type"`
	EntityID   uint        `gorm:"not null" json:"entity_id"`
	Details    string      `gorm:"type:text" json:"details"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (AdminLogEntry) TableName() string {
	return "admin_logs"
}
