package models

import "time"

// User represents a platform account. Role drives the permission checks
// in the middleware package.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string    `json:"name" validate:"required,min=2,max=100"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password     string    `json:"-" gorm:"type:varchar(255)"`
	Image        string    `json:"image" validate:"omitempty,url"`
	Role         Role      `json:"role" gorm:"type:varchar(20)"`
	LastLoggedIn time.Time `json:"last_logged_in"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
