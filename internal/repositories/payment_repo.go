package repositories

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	// Create inserts a payment. A duplicate transaction ID fails with a
	// wrapped ErrDuplicate.
	Create(payment *models.Payment) error
	GetByTransactionID(txID string) (*models.Payment, error)
	GetByCustomerEmail(email string) ([]models.Payment, error)
	GetAll() ([]models.Payment, error)
	// UpdateStatusByOrderID mirrors an order status change onto the
	// order's payment record, if one exists.
	UpdateStatusByOrderID(orderID, status string) error
}
