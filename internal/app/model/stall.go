package model

import (
	"time"
)

// FoodStall is a listed stall. Stalls are created exclusively by approving
// an application; there is no direct create path.
type FoodStall struct {
	ID          uint        `gorm:"primarykey" json:"id"`
	OwnerID     uint        `gorm:"not null;index" json:"owner_id"`
	Owner       User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string      `gorm:"not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Categories  StringArray `gorm:"type:text" json:"categories"`
	LogoURL     string      `json:"logo_url"`
	IsActive    bool        `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Location  *StallLocation `gorm:"foreignKey:StallID" json:"location,omitempty"`
	MenuItems []MenuItem     `gorm:"foreignKey:StallID" json:"menu_items,omitempty"`
}

func (FoodStall) TableName() string {
	return "food_stalls"
}

// StallLocation is the stall's display location (1:1 with the stall).
type StallLocation struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	StallID uint   `gorm:"not null;uniqueIndex" json:"stall_id"`
	Address string `gorm:"type:text" json:"address"`
}

func (StallLocation) TableName() string {
	return "stall_locations"
}

type MenuItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StallID     uint      `gorm:"not null;index" json:"stall_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	ImageURL    string    `json:"image_url"`
	Available   bool      `gorm:"default:true" json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
