package models

import "time"

// Book statuses. Only published books are visible in the public catalog.
const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
)

// Book represents a catalog entry owned by a librarian.
type Book struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	AuthorName  string    `json:"author_name" validate:"required"`
	AuthorEmail string    `json:"author_email" gorm:"index;type:varchar(255)" validate:"required,email"`
	Image       string    `json:"image" validate:"omitempty,url"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	Status      string    `json:"status" validate:"omitempty,oneof=draft published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
