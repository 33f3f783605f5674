package models

import "time"

// WishlistItem is a saved book for a user. The composite unique index backs
// the duplicate check in the wishlist service.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserEmail string    `json:"user_email" gorm:"uniqueIndex:idx_wishlist_user_book;type:varchar(255)" validate:"required,email"`
	BookID    string    `json:"book_id" gorm:"uniqueIndex:idx_wishlist_user_book;type:varchar(36)" validate:"required"`
	BookName  string    `json:"book_name"`
	Image     string    `json:"image"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
