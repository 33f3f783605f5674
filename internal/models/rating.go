package models

import "time"

// Rating is a user's review of a book.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	BookID    string    `json:"book_id" gorm:"index;type:varchar(36)" validate:"required"`
	UserEmail string    `json:"user_email" gorm:"index;type:varchar(255)" validate:"required,email"`
	UserName  string    `json:"user_name"`
	Score     int       `json:"score" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at"`
}
