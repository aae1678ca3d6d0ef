package models

import (
	"time"
)

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID                uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string  `gorm:"not null"                 json:"name"`
	Description       string  `json:"description"`
	Price             float64 `gorm:"not null"                 json:"price"`
	QuantityInStock   int     `gorm:"not null;check:quantity_in_stock >= 0" json:"quantity_in_stock"`
	LowStockThreshold int     `gorm:"not null"                 json:"low_stock_threshold"`
	CategoryID        *uint   `gorm:"index"                    json:"category_id"`
}

// LowStock reports whether the product is at or below its restock threshold.
func (p Product) LowStock() bool {
	return p.QuantityInStock <= p.LowStockThreshold
}

// CartItem is one line of a session cart. Product is a display snapshot taken
// when the item was added; checkout always re-reads the live product.
type CartItem struct {
	ProductID uint     `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `json:"quantity"`
}

// Cart is the JSON payload stored per session. It is never persisted as an
// entity of its own, only round-tripped through the cart store.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) TotalCost() float64 {
	var total float64
	for _, it := range c.Items {
		if it.Product != nil {
			total += it.Product.Price * float64(it.Quantity)
		}
	}
	return total
}

const OrderStatusPending = "Pending"

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderDate       time.Time   `gorm:"not null"                 json:"order_date"`
	GuestName       string      `gorm:"not null"                 json:"guest_name"`
	Email           string      `gorm:"not null;index"           json:"email"`
	PhoneNumber     string      `json:"phone_number"`
	ShippingAddress string      `json:"shipping_address"`
	TotalPrice      float64     `gorm:"not null"                 json:"total_price"`
	Status          string      `gorm:"not null"                 json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
}

// TotalPrice is derived, never stored: UnitPrice is frozen at placement time.
func (i OrderItem) TotalPrice() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
