package services

import (
	"fmt"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
)

// latestBookCount is how many books the storefront's latest listing shows.
const latestBookCount = 8

// BookService handles business logic for the catalog.
type BookService struct {
	repo repositories.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(repo repositories.BookRepository) *BookService {
	return &BookService{repo: repo}
}

// GetLatest retrieves the newest published books.
func (s *BookService) GetLatest() ([]models.Book, error) {
	return s.repo.GetLatestPublished(latestBookCount)
}

// GetPublished retrieves published books, optionally filtered by title and
// sorted by price.
func (s *BookService) GetPublished(search string, sort repositories.BookSort) ([]models.Book, error) {
	return s.repo.GetPublished(search, sort)
}

// GetAll retrieves every book regardless of status, for the admin view.
func (s *BookService) GetAll() ([]models.Book, error) {
	return s.repo.GetAll()
}

// GetByAuthor retrieves a librarian's own books.
func (s *BookService) GetByAuthor(email string) ([]models.Book, error) {
	return s.repo.GetByAuthorEmail(email)
}

// GetByID retrieves a single book.
func (s *BookService) GetByID(id string) (*models.Book, error) {
	return s.repo.GetByID(id)
}

// CreateBook creates a new book. Books start as drafts unless a status is
// given.
func (s *BookService) CreateBook(book *models.Book) error {
	if book.Status == "" {
		book.Status = models.BookStatusDraft
	}
	return s.repo.Create(book)
}

// UpdateBook updates an existing book.
func (s *BookService) UpdateBook(book *models.Book) error {
	return s.repo.Update(book)
}

// UpdateStatus publishes or unpublishes a book.
func (s *BookService) UpdateStatus(id, status string) error {
	if status != models.BookStatusDraft && status != models.BookStatusPublished {
		return fmt.Errorf("unknown book status %q", status)
	}
	return s.repo.UpdateStatus(id, status)
}

// DeleteBook deletes a book, refusing while it is published.
func (s *BookService) DeleteBook(id string) error {
	book, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if book.Status == models.BookStatusPublished {
		return ErrBookPublished
	}
	return s.repo.Delete(id)
}
