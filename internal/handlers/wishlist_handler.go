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

// WishlistHandler handles HTTP requests for wishlists.
type WishlistHandler struct {
	wishlistService *services.WishlistService
	validate        *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(wishlistService *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validate:        validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	wishlistRoutes := router.Group("/wishlist", auth)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddItem)
	wishlistRoutes.Delete("/:id", h.HandleRemoveItem)
}

// HandleGetWishlist returns the caller's wishlist.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	items, err := h.wishlistService.GetByUser(middleware.Principal(c))
	if err != nil {
		log.Printf("Error getting wishlist: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve wishlist",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// AddWishlistRequest represents the request body for adding a wishlist
// entry.
type AddWishlistRequest struct {
	BookID   string  `json:"book_id" validate:"required"`
	BookName string  `json:"book_name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
}

// HandleAddItem adds a book to the caller's wishlist. Duplicates get a
// conflict response and no insert.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	item := models.WishlistItem{
		UserEmail: middleware.Principal(c),
		BookID:    req.BookID,
		BookName:  req.BookName,
		Image:     req.Image,
		Price:     req.Price,
	}
	if err := h.wishlistService.AddItem(&item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "already_exists",
			})
		}
		log.Printf("Error adding wishlist item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add wishlist item",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveItem deletes a wishlist entry.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.wishlistService.RemoveItem(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Wishlist item not found",
			})
		}
		log.Printf("Error removing wishlist item %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove wishlist item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Wishlist item removed"})
}
