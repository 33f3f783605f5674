package services

import (
	"fmt"
	"log"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/pkg/rabbitmq"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	bookRepo    repositories.BookRepository
	events      rabbitmq.Publisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, bookRepo repositories.BookRepository, events rabbitmq.Publisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		bookRepo:    bookRepo,
		events:      events,
	}
}

// CreateOrder creates a pending, unpaid order, snapshotting the book's
// fields at order time.
func (s *OrderService) CreateOrder(bookID, customerEmail, customerName string, quantity int) (*models.Order, error) {
	book, err := s.bookRepo.GetByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", bookID, err)
	}
	if book.Status != models.BookStatusPublished {
		return nil, fmt.Errorf("book %s is not published", bookID)
	}
	if book.Quantity < quantity {
		return nil, fmt.Errorf("insufficient stock for %s (requested: %d, available: %d)",
			book.Title, quantity, book.Quantity)
	}

	newOrder := &models.Order{
		BookID:        book.ID,
		BookName:      book.Title,
		CustomerEmail: customerEmail,
		CustomerName:  customerName,
		AuthorName:    book.AuthorName,
		AuthorEmail:   book.AuthorEmail,
		Quantity:      quantity,
		Price:         book.Price,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publish(rabbitmq.EventOrderCreated, map[string]interface{}{
		"orderId":       newOrder.ID,
		"bookId":        newOrder.BookID,
		"customerEmail": newOrder.CustomerEmail,
		"status":        newOrder.Status,
	})

	return newOrder, nil
}

// GetOrdersByCustomer retrieves a customer's orders.
func (s *OrderService) GetOrdersByCustomer(email string) ([]models.Order, error) {
	return s.orderRepo.GetByCustomerEmail(email)
}

// GetPaidOrdersByAuthor retrieves paid orders for a librarian's books.
func (s *OrderService) GetPaidOrdersByAuthor(email string) ([]models.Order, error) {
	return s.orderRepo.GetPaidByAuthorEmail(email)
}

// UpdateOrderStatus validates and applies a new order status, mirroring it
// onto the order's payment record when one exists. The two writes are not
// atomic.
func (s *OrderService) UpdateOrderStatus(id, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	if err := s.paymentRepo.UpdateStatusByOrderID(id, status); err != nil {
		return fmt.Errorf("failed to mirror status onto payment for order %s: %w", id, err)
	}

	s.publish(rabbitmq.EventOrderStatusChanged, map[string]interface{}{
		"orderId": id,
		"status":  status,
	})

	return nil
}

// CancelOrder sets an order's status to cancelled.
func (s *OrderService) CancelOrder(id string) error {
	return s.UpdateOrderStatus(id, models.OrderStatusCancelled)
}

func (s *OrderService) publish(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
