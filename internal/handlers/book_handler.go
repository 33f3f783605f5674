package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/middleware"
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
)

// BookHandler handles HTTP requests for the catalog.
type BookHandler struct {
	bookService *services.BookService
	validate    *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the book routes. Fixed paths are registered
// before the parameterized ones.
func (h *BookHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, require func(models.Permission) fiber.Handler) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/latest", h.HandleGetLatest)
	bookRoutes.Get("/manage", auth, require(models.PermManageCatalog), h.HandleGetAllBooks)
	bookRoutes.Get("/mine", auth, require(models.PermPublishBooks), h.HandleGetMyBooks)
	bookRoutes.Get("/", h.HandleGetPublished)
	bookRoutes.Post("/", auth, require(models.PermPublishBooks), h.HandleCreateBook)
	bookRoutes.Get("/:id", h.HandleGetBookByID)
	bookRoutes.Put("/:id", auth, require(models.PermPublishBooks), h.HandleUpdateBook)
	bookRoutes.Patch("/:id/status", auth, h.HandleUpdateStatus)
	bookRoutes.Delete("/:id", auth, require(models.PermPublishBooks), h.HandleDeleteBook)
}

// HandleGetLatest returns the newest published books.
func (h *BookHandler) HandleGetLatest(c *fiber.Ctx) error {
	books, err := h.bookService.GetLatest()
	if err != nil {
		log.Printf("Error getting latest books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetPublished returns published books with optional search and sort.
func (h *BookHandler) HandleGetPublished(c *fiber.Ctx) error {
	search := c.Query("search")
	sort := repositories.BookSort(c.Query("sort"))
	books, err := h.bookService.GetPublished(search, sort)
	if err != nil {
		log.Printf("Error getting published books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetAllBooks returns every book for the admin catalog view.
func (h *BookHandler) HandleGetAllBooks(c *fiber.Ctx) error {
	books, err := h.bookService.GetAll()
	if err != nil {
		log.Printf("Error getting all books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetMyBooks returns the calling librarian's books.
func (h *BookHandler) HandleGetMyBooks(c *fiber.Ctx) error {
	books, err := h.bookService.GetByAuthor(middleware.Principal(c))
	if err != nil {
		log.Printf("Error getting librarian books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(books)
}

// HandleGetBookByID returns a single book.
func (h *BookHandler) HandleGetBookByID(c *fiber.Ctx) error {
	id := c.Params("id")
	book, err := h.bookService.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error getting book %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleCreateBook creates a new book owned by the calling librarian.
func (h *BookHandler) HandleCreateBook(c *fiber.Ctx) error {
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	book.AuthorEmail = middleware.Principal(c)
	if err := h.validate.Struct(book); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.bookService.CreateBook(&book); err != nil {
		log.Printf("Error creating book: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create book",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// HandleUpdateBook replaces a book's fields.
func (h *BookHandler) HandleUpdateBook(c *fiber.Ctx) error {
	id := c.Params("id")
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	book.ID = id
	if err := h.validate.Struct(book); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.bookService.UpdateBook(&book); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error updating book %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleUpdateStatus publishes or unpublishes a book.
func (h *BookHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.bookService.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		log.Printf("Error updating book status %s: %v", id, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update book status",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Book status updated"})
}

// HandleDeleteBook deletes a book unless it is published.
func (h *BookHandler) HandleDeleteBook(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.bookService.DeleteBook(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		if errors.Is(err, services.ErrBookPublished) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Book is published and cannot be deleted",
			})
		}
		log.Printf("Error deleting book %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete book",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Book deleted successfully"})
}
