package services

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
)

// RatingService handles business logic for book reviews.
type RatingService struct {
	repo repositories.RatingRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(repo repositories.RatingRepository) *RatingService {
	return &RatingService{repo: repo}
}

// GetForBook retrieves a user's reviews of a book.
func (s *RatingService) GetForBook(bookID, userEmail string) ([]models.Rating, error) {
	return s.repo.GetByBookAndUser(bookID, userEmail)
}

// AddRating inserts a review.
func (s *RatingService) AddRating(rating *models.Rating) error {
	return s.repo.Create(rating)
}
