package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// MockPaymentRepository is an in-memory implementation of PaymentRepository.
// It enforces the transaction-ID uniqueness the GORM implementation gets
// from its unique index.
type MockPaymentRepository struct {
	payments map[string]models.Payment // keyed by transaction ID
	mu       sync.RWMutex
}

// NewMockPaymentRepository creates a new instance of MockPaymentRepository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]models.Payment),
	}
}

// Create inserts a payment, rejecting a duplicate transaction ID.
func (r *MockPaymentRepository) Create(payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.TransactionID]; ok {
		return fmt.Errorf("payment for transaction %s: %w", payment.TransactionID, ErrDuplicate)
	}
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.CreatedAt = time.Now()
	r.payments[payment.TransactionID] = *payment
	return nil
}

// GetByTransactionID returns the payment for a transaction, if recorded.
func (r *MockPaymentRepository) GetByTransactionID(txID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[txID]
	if !ok {
		return nil, fmt.Errorf("payment for transaction %s: %w", txID, ErrNotFound)
	}
	return &payment, nil
}

// GetByCustomerEmail returns a customer's payments.
func (r *MockPaymentRepository) GetByCustomerEmail(email string) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payments []models.Payment
	for _, payment := range r.payments {
		if payment.CustomerEmail == email {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

// GetAll returns every payment.
func (r *MockPaymentRepository) GetAll() ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]models.Payment, 0, len(r.payments))
	for _, payment := range r.payments {
		payments = append(payments, payment)
	}
	return payments, nil
}

// UpdateStatusByOrderID mirrors an order status onto its payment, if any.
func (r *MockPaymentRepository) UpdateStatusByOrderID(orderID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for txID, payment := range r.payments {
		if payment.OrderID == orderID {
			payment.Status = status
			r.payments[txID] = payment
		}
	}
	return nil
}
