package services

import (
	"errors"
	"fmt"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
)

// WishlistService handles business logic for wishlists.
type WishlistService struct {
	repo repositories.WishlistRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(repo repositories.WishlistRepository) *WishlistService {
	return &WishlistService{repo: repo}
}

// GetByUser retrieves a user's wishlist.
func (s *WishlistService) GetByUser(email string) ([]models.WishlistItem, error) {
	return s.repo.GetByUserEmail(email)
}

// AddItem adds a book to a user's wishlist. Adding the same (user, book)
// pair twice fails with a wrapped repositories.ErrDuplicate and inserts
// nothing.
func (s *WishlistService) AddItem(item *models.WishlistItem) error {
	if _, err := s.repo.GetByUserAndBook(item.UserEmail, item.BookID); err == nil {
		return fmt.Errorf("wishlist entry for book %s: %w", item.BookID, repositories.ErrDuplicate)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	return s.repo.Create(item)
}

// RemoveItem deletes a wishlist entry.
func (s *WishlistService) RemoveItem(id string) error {
	return s.repo.Delete(id)
}
