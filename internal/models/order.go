package models

import "time"

// Order statuses, librarian-driven after the initial pending state.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses on an order. PaymentStatusPaid is set exactly once,
// when the corresponding Payment record is created.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Order represents a customer's book order. Book and customer fields are
// snapshots taken at order time.
type Order struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	BookID        string    `json:"book_id" gorm:"type:varchar(36)" validate:"required"`
	BookName      string    `json:"book_name"`
	CustomerEmail string    `json:"customer_email" gorm:"index;type:varchar(255)" validate:"required,email"`
	CustomerName  string    `json:"customer_name"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"author_email" gorm:"index;type:varchar(255)"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	Price         float64   `json:"price" validate:"gt=0"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
