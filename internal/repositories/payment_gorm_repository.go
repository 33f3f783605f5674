package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

// Create inserts a payment record. The unique index on transaction_id turns
// a concurrent duplicate insert into ErrDuplicate.
func (r *GORMPaymentRepository) Create(payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("payment for transaction %s: %w", payment.TransactionID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByTransactionID retrieves the payment recorded for a provider
// transaction, if any.
func (r *GORMPaymentRepository) GetByTransactionID(txID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "transaction_id = ?", txID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment for transaction %s: %w", txID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment for transaction %s: %w", txID, err)
	}
	return &payment, nil
}

// GetByCustomerEmail returns a customer's payments, newest first.
func (r *GORMPaymentRepository) GetByCustomerEmail(email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("customer_email = ?", email).
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for %s: %w", email, err)
	}
	return payments, nil
}

// GetAll returns every payment record.
func (r *GORMPaymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get all payments: %w", err)
	}
	return payments, nil
}

// UpdateStatusByOrderID mirrors an order status onto its payment record.
// Zero rows affected is not an error: unpaid orders have no payment yet.
func (r *GORMPaymentRepository) UpdateStatusByOrderID(orderID, status string) error {
	res := r.db.Model(&models.Payment{}).Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to mirror status onto payment for order %s: %w", orderID, res.Error)
	}
	return nil
}
