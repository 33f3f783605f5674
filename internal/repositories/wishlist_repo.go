package repositories

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	Create(item *models.WishlistItem) error
	GetByUserEmail(email string) ([]models.WishlistItem, error)
	GetByUserAndBook(email, bookID string) (*models.WishlistItem, error)
	Delete(id string) error
}
