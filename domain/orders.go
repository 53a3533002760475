package domain

import "time"

type Order struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerID   uint      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	ProductID    uint      `gorm:"column:product_id;not null" json:"product_id"`
	Quantity     int       `gorm:"column:quantity;not null" json:"quantity"`
	PurchaseDate time.Time `gorm:"column:purchase_date" json:"purchase_date"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderWithProduct is an order row joined with its product, as read by the
// recommendation queries.
type OrderWithProduct struct {
	OrderID      uint      `json:"order_id"`
	CustomerID   uint      `json:"customer_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	PurchaseDate time.Time `json:"purchase_date"`
}
