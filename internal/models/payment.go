package models

import "time"

// Payment records a captured provider transaction for an order. The unique
// index on TransactionID makes a concurrent duplicate reconciliation fail at
// insert time instead of producing a second record.
type Payment struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string    `json:"order_id" gorm:"index;type:varchar(36)"`
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex;type:varchar(255)"`
	BookName      string    `json:"book_name"`
	AuthorName    string    `json:"author_name"`
	AuthorEmail   string    `json:"author_email"`
	CustomerEmail string    `json:"customer_email" gorm:"index;type:varchar(255)"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
	Price         float64   `json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}
