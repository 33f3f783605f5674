package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

// Create adds a wishlist item. A duplicate (user, book) pair fails with a
// wrapped ErrDuplicate.
func (r *GORMWishlistRepository) Create(item *models.WishlistItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("wishlist entry for book %s: %w", item.BookID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}
	return nil
}

// GetByUserEmail returns a user's wishlist, newest first.
func (r *GORMWishlistRepository) GetByUserEmail(email string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.Where("user_email = ?", email).
		Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get wishlist for %s: %w", email, err)
	}
	return items, nil
}

// GetByUserAndBook returns a single wishlist entry, if present.
func (r *GORMWishlistRepository) GetByUserAndBook(email, bookID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.First(&item, "user_email = ? AND book_id = ?", email, bookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wishlist entry for book %s: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist entry: %w", err)
	}
	return &item, nil
}

// Delete removes a wishlist item by its ID.
func (r *GORMWishlistRepository) Delete(id string) error {
	res := r.db.Delete(&models.WishlistItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("wishlist item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
