package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/middleware"
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
)

// RatingHandler handles HTTP requests for book reviews.
type RatingHandler struct {
	ratingService *services.RatingService
	validate      *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *RatingHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	reviewRoutes := router.Group("/reviews", auth)
	reviewRoutes.Get("/:bookId", h.HandleGetReviews)
	reviewRoutes.Post("/", h.HandleAddReview)
}

// HandleGetReviews returns the caller's reviews for a book.
func (h *RatingHandler) HandleGetReviews(c *fiber.Ctx) error {
	bookID := c.Params("bookId")
	reviews, err := h.ratingService.GetForBook(bookID, middleware.Principal(c))
	if err != nil {
		log.Printf("Error getting reviews for book %s: %v", bookID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// AddReviewRequest represents the request body for a review.
type AddReviewRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	UserName string `json:"user_name"`
	Score    int    `json:"score" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

// HandleAddReview inserts a review by the caller.
func (h *RatingHandler) HandleAddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	rating := models.Rating{
		BookID:    req.BookID,
		UserEmail: middleware.Principal(c),
		UserName:  req.UserName,
		Score:     req.Score,
		Comment:   req.Comment,
	}
	if err := h.ratingService.AddRating(&rating); err != nil {
		log.Printf("Error adding review: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"inserted_id": rating.ID})
}
