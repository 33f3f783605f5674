package repositories

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// BookSort selects the ordering of a catalog listing.
type BookSort string

const (
	BookSortNewest    BookSort = ""
	BookSortPriceAsc  BookSort = "low-high"
	BookSortPriceDesc BookSort = "high-low"
)

// BookRepository defines the interface for book data access.
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id string) (*models.Book, error)
	Update(book *models.Book) error
	UpdateStatus(id, status string) error
	Delete(id string) error
	GetAll() ([]models.Book, error)
	GetPublished(search string, sort BookSort) ([]models.Book, error)
	GetLatestPublished(limit int) ([]models.Book, error)
	GetByAuthorEmail(email string) ([]models.Book, error)
}
