package repositories

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// RatingRepository defines the interface for book rating data access.
type RatingRepository interface {
	Create(rating *models.Rating) error
	GetByBookAndUser(bookID, email string) ([]models.Rating, error)
}
