package models

import "time"

// Store represents a seller's store. A store belongs to the user who
// created it; all lookups and mutations are scoped to that owner.
type Store struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"required,min=3,max=500"`
	Slug        string    `json:"slug" gorm:"type:varchar(120)"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index"`
	CreatedByID string    `json:"created_by" gorm:"type:varchar(36)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
