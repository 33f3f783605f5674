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

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, require func(models.Permission) fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:email", h.HandleGetOrdersByCustomer)
	orderRoutes.Get("/:email/payments", require(models.PermUpdateOrderStatus), h.HandleGetPaidOrdersByAuthor)
	orderRoutes.Patch("/:id/status", require(models.PermUpdateOrderStatus), h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/:id/cancel", h.HandleCancelOrder)
}

// CreateOrderRequest represents the request body for placing an order.
type CreateOrderRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,gt=0"`
}

// HandleCreateOrder places a new order for the calling customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	order, err := h.orderService.CreateOrder(req.BookID, middleware.Principal(c), req.CustomerName, req.Quantity)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrdersByCustomer returns a customer's orders.
func (h *OrderHandler) HandleGetOrdersByCustomer(c *fiber.Ctx) error {
	email := c.Params("email")
	orders, err := h.orderService.GetOrdersByCustomer(email)
	if err != nil {
		log.Printf("Error getting orders for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetPaidOrdersByAuthor returns paid orders for a librarian's books.
func (h *OrderHandler) HandleGetPaidOrdersByAuthor(c *fiber.Ctx) error {
	email := c.Params("email")
	orders, err := h.orderService.GetPaidOrdersByAuthor(email)
	if err != nil {
		log.Printf("Error getting paid orders for author %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleUpdateOrderStatus applies a librarian-driven status transition.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.orderService.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		if errors.Is(err, services.ErrInvalidOrderStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order status",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"status":  req.Status,
	})
}

// HandleCancelOrder cancels an order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if err := h.orderService.CancelOrder(orderID); err != nil {
		log.Printf("Error cancelling order %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not cancel order",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Order cancelled"})
}
