package model

import (
	"time"
)

type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StallID   uint      `gorm:"not null;index" json:"stall_id"`
	Stall     FoodStall `gorm:"foreignKey:StallID" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Anonymous bool      `gorm:"default:false" json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewReaction is a "helpful" mark on a review, one per user per review.
type ReviewReaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ReviewID  uint      `gorm:"not null;index:idx_review_user_reaction,unique" json:"review_id"`
	UserID    uint      `gorm:"not null;index:idx_review_user_reaction,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ReviewReaction) TableName() string {
	return "review_reactions"
}

// ReportReason enumerates why a review was reported. ReasonOther requires a
// free-text explanation.
type ReportReason string

const (
	ReasonSpam       ReportReason = "spam"
	ReasonOffensive  ReportReason = "offensive"
	ReasonFalseInfo  ReportReason = "false_info"
	ReasonHarassment ReportReason = "harassment"
	ReasonOther      ReportReason = "other"
)

// Valid reports whether the reason is a known enum value.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonOffensive, ReasonFalseInfo, ReasonHarassment, ReasonOther:
		return true
	}
	return false
}

// ReviewReport is a single abuse report against a review. Unresolved reports
// for the same review aggregate into one moderation case.
type ReviewReport struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	ReviewID     uint         `gorm:"not null;index" json:"review_id"`
	ReporterID   uint         `gorm:"not null;index" json:"reporter_id"`
	Reporter     User         `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Reason       ReportReason `gorm:"type:varchar(20);not null" json:"reason"`
	CustomReason string       `gorm:"type:text" json:"custom_reason"`
	Resolved     bool         `gorm:"default:false;index" json:"resolved"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
}

func (ReviewReport) TableName() string {
	return "review_reports"
}
