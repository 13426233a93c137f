package model

import (
	"time"
)

// ApplicationStatus is the lifecycle state of a stall application.
// Pending is the only non-terminal state: an application moves once to
// Approved, Declined or Archived and never back.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationDeclined ApplicationStatus = "declined"
	ApplicationArchived ApplicationStatus = "archived"
)

// Terminal reports whether the status can no longer change.
func (s ApplicationStatus) Terminal() bool {
	return s != ApplicationPending
}

// Application is a vendor's request to list a stall on the platform.
// Document fields hold references to already-stored files; the upload
// mechanics live in the storage collaborator.
type Application struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	ApplicantID uint        `gorm:"not null;index" json:"applicant_id"`
	Applicant   User        `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	StallName   string      `gorm:"not null" json:"stall_name"`
	Description string      `gorm:"type:text" json:"description"`
	Location    string      `gorm:"type:text" json:"location"`
	Categories  StringArray `gorm:"type:text" json:"categories"`

	RegistrationDoc string `json:"registration_doc"`
	PermitDoc       string `json:"permit_doc"`
	TaxDoc          string `json:"tax_doc"`
	LogoURL         string `json:"logo_url"`

	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	ReviewNotes string            `gorm:"type:text" json:"review_notes"`
	ReviewedBy  *uint             `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
