package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{db: db}
}

// Create inserts a rating.
func (r *GORMRatingRepository) Create(rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	if err := r.db.Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// GetByBookAndUser returns a user's ratings for a book, newest first.
func (r *GORMRatingRepository) GetByBookAndUser(bookID, email string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("book_id = ? AND user_email = ?", bookID, email).
		Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings for book %s: %w", bookID, err)
	}
	return ratings, nil
}
