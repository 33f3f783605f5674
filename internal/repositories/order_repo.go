package repositories

import (
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByCustomerEmail(email string) ([]models.Order, error)
	GetPaidByAuthorEmail(email string) ([]models.Order, error)
	UpdateStatus(id, status string) error
	// RecordPayment sets the order's payment status and decrements its
	// quantity by one, as a single update.
	RecordPayment(id, paymentStatus string) error
}
