package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/pkg/checkout"
	"github.com/mdriyazakondo/book-curriter-server/pkg/rabbitmq"
)

// PaymentService owns checkout initiation and the reconciliation sequence
// that turns a settled provider session into exactly one Payment record.
type PaymentService struct {
	paymentRepo repositories.PaymentRepository
	orderRepo   repositories.OrderRepository
	provider    checkout.Provider
	events      rabbitmq.Publisher

	successURL string
	cancelURL  string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, orderRepo repositories.OrderRepository, provider checkout.Provider, events rabbitmq.Publisher, successURL, cancelURL string) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		provider:    provider,
		events:      events,
		successURL:  successURL,
		cancelURL:   cancelURL,
	}
}

// CreateCheckoutSession initiates a provider checkout for an order and
// returns the hosted payment page URL. The order ID travels in the session
// metadata so reconciliation can find its way back.
func (s *PaymentService) CreateCheckoutSession(orderID string) (string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}

	sess, err := s.provider.CreateSession(checkout.CreateSessionRequest{
		OrderID:       order.ID,
		ProductName:   order.BookName,
		CustomerEmail: order.CustomerEmail,
		AmountMinor:   int64(math.Round(order.Price * 100)),
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session for order %s: %w", orderID, err)
	}
	return sess.URL, nil
}

// ReconcileResult is the outcome of a reconciliation call.
type ReconcileResult struct {
	Completed        bool   `json:"completed"`
	AlreadyProcessed bool   `json:"already_processed"`
	TransactionID    string `json:"transaction_id,omitempty"`
	PaymentID        string `json:"payment_id,omitempty"`
	OrderID          string `json:"order_id,omitempty"`
}

// ReconcileSession confirms a checkout session's outcome with the provider
// and, when the session is paid, records the payment exactly once and
// advances the order. Repeated calls for the same session return the same
// transaction ID without side effects. Every financial fact is taken from
// the provider's session, never from the caller.
func (s *PaymentService) ReconcileSession(sessionID string) (*ReconcileResult, error) {
	sess, err := s.provider.RetrieveSession(sessionID)
	if err != nil {
		return nil, err
	}

	if sess.OrderID == "" {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrMalformedSession)
	}

	order, err := s.orderRepo.GetByID(sess.OrderID)
	if err != nil {
		return nil, err
	}

	// Refresh of the success page retries this call; answer from the
	// existing record.
	if existing, err := s.paymentRepo.GetByTransactionID(sess.TransactionID); err == nil {
		return &ReconcileResult{
			Completed:        true,
			AlreadyProcessed: true,
			TransactionID:    existing.TransactionID,
			PaymentID:        existing.ID,
			OrderID:          existing.OrderID,
		}, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if sess.PaymentStatus != checkout.PaymentStatusPaid {
		return &ReconcileResult{Completed: false, OrderID: order.ID}, nil
	}

	payment := &models.Payment{
		OrderID:       order.ID,
		TransactionID: sess.TransactionID,
		BookName:      order.BookName,
		AuthorName:    order.AuthorName,
		AuthorEmail:   order.AuthorEmail,
		CustomerEmail: sess.CustomerEmail,
		CustomerName:  order.CustomerName,
		Status:        order.Status,
		Price:         float64(sess.AmountTotal) / 100,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		// A concurrent reconciliation for the same session won the
		// insert; the unique index on the transaction ID rejects ours.
		if errors.Is(err, repositories.ErrDuplicate) {
			return &ReconcileResult{
				Completed:        true,
				AlreadyProcessed: true,
				TransactionID:    sess.TransactionID,
				OrderID:          order.ID,
			}, nil
		}
		return nil, err
	}

	if err := s.orderRepo.RecordPayment(order.ID, sess.PaymentStatus); err != nil {
		return nil, fmt.Errorf("payment %s recorded but order update failed: %w", payment.ID, err)
	}

	s.publish(rabbitmq.EventPaymentRecorded, map[string]interface{}{
		"paymentId":     payment.ID,
		"orderId":       order.ID,
		"transactionId": payment.TransactionID,
		"price":         payment.Price,
	})

	return &ReconcileResult{
		Completed:     true,
		TransactionID: payment.TransactionID,
		PaymentID:     payment.ID,
		OrderID:       order.ID,
	}, nil
}

// GetPaymentsByCustomer retrieves a customer's payment history.
func (s *PaymentService) GetPaymentsByCustomer(email string) ([]models.Payment, error) {
	return s.paymentRepo.GetByCustomerEmail(email)
}

// GetAllPayments retrieves every payment, for the admin view.
func (s *PaymentService) GetAllPayments() ([]models.Payment, error) {
	return s.paymentRepo.GetAll()
}

func (s *PaymentService) publish(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
