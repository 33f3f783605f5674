package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{db: db}
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// Update updates an existing book in the database.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book)
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s: %w", book.ID, ErrNotFound)
	}
	return nil
}

// UpdateStatus sets a book's publish status.
func (r *GORMBookRepository) UpdateStatus(id, status string) error {
	res := r.db.Model(&models.Book{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update book status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a book by its ID from the database.
func (r *GORMBookRepository) Delete(id string) error {
	res := r.db.Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetAll retrieves all books, newest first.
func (r *GORMBookRepository) GetAll() ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get all books: %w", err)
	}
	return books, nil
}

// GetPublished retrieves published books with an optional case-insensitive
// title search and price sort.
func (r *GORMBookRepository) GetPublished(search string, sort BookSort) ([]models.Book, error) {
	q := r.db.Where("status = ?", models.BookStatusPublished)
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	switch sort {
	case BookSortPriceAsc:
		q = q.Order("price ASC")
	case BookSortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}
	var books []models.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get published books: %w", err)
	}
	return books, nil
}

// GetLatestPublished retrieves the newest published books up to limit.
func (r *GORMBookRepository) GetLatestPublished(limit int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.Where("status = ?", models.BookStatusPublished).
		Order("created_at DESC").Limit(limit).Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest books: %w", err)
	}
	return books, nil
}

// GetByAuthorEmail retrieves every book owned by the given librarian.
func (r *GORMBookRepository) GetByAuthorEmail(email string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("author_email = ?", email).Find(&books).Error; err != nil {
		return nil, fmt.Errorf("failed to get books for author %s: %w", email, err)
	}
	return books, nil
}
