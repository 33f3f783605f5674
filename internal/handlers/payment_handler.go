package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
	"github.com/mdriyazakondo/book-curriter-server/pkg/checkout"
)

// PaymentHandler handles HTTP requests for checkout and payments.
type PaymentHandler struct {
	paymentService *services.PaymentService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the payment routes. The reconciliation endpoint
// is public: the session reference is the only input and every financial
// fact is re-fetched from the provider.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, require func(models.Permission) fiber.Handler) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Post("/checkout-session", auth, h.HandleCreateCheckoutSession)
	paymentRoutes.Patch("/success", h.HandlePaymentSuccess)
	paymentRoutes.Get("/", auth, require(models.PermViewAllPayments), h.HandleGetAllPayments)
	paymentRoutes.Get("/:email", auth, h.HandleGetPaymentsByCustomer)
}

// CheckoutSessionRequest represents the request body for checkout
// initiation.
type CheckoutSessionRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// HandleCreateCheckoutSession creates a provider checkout session for an
// order and returns its redirect URL.
func (h *PaymentHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req CheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	url, err := h.paymentService.CreateCheckoutSession(req.OrderID)
	if err != nil {
		log.Printf("Error creating checkout session for order %s: %v", req.OrderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		if errors.Is(err, checkout.ErrProviderUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Payment provider unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create checkout session",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"url": url})
}

// HandlePaymentSuccess reconciles a checkout session after the customer
// returns from the provider.
func (h *PaymentHandler) HandlePaymentSuccess(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "session_id is required",
		})
	}

	result, err := h.paymentService.ReconcileSession(sessionID)
	if err != nil {
		log.Printf("Error reconciling session %s: %v", sessionID, err)
		switch {
		case errors.Is(err, checkout.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Checkout session not found",
			})
		case errors.Is(err, checkout.ErrProviderUnavailable):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Payment provider unavailable",
			})
		case errors.Is(err, services.ErrMalformedSession):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "Checkout session carries no order reference",
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not process payment",
			"error":   err.Error(),
		})
	}

	if !result.Completed {
		return c.JSON(fiber.Map{"message": "Payment not completed"})
	}
	if result.AlreadyProcessed {
		return c.JSON(fiber.Map{
			"message":        "Payment already processed",
			"transaction_id": result.TransactionID,
		})
	}
	return c.JSON(fiber.Map{
		"transaction_id": result.TransactionID,
		"payment_id":     result.PaymentID,
		"order_id":       result.OrderID,
	})
}

// HandleGetPaymentsByCustomer returns a customer's payment history.
func (h *PaymentHandler) HandleGetPaymentsByCustomer(c *fiber.Ctx) error {
	email := c.Params("email")
	payments, err := h.paymentService.GetPaymentsByCustomer(email)
	if err != nil {
		log.Printf("Error getting payments for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve payments",
			"error":   err.Error(),
		})
	}
	return c.JSON(payments)
}

// HandleGetAllPayments returns every payment, for the admin view.
func (h *PaymentHandler) HandleGetAllPayments(c *fiber.Ctx) error {
	payments, err := h.paymentService.GetAllPayments()
	if err != nil {
		log.Printf("Error getting all payments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve payments",
			"error":   err.Error(),
		})
	}
	return c.JSON(payments)
}
