package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// allowedTransitions maps each status to its direct successors.
// Delivered and cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether next is a direct allowed successor of s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order represents a customer order.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id" gorm:"index;type:varchar(36)"`
	User        User            `json:"-" gorm:"foreignKey:UserID"`
	OrderNumber string          `json:"order_number" gorm:"uniqueIndex;type:varchar(20)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Status      OrderStatus     `json:"status" gorm:"type:varchar(20)"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (o *Order) IsOwnedBy(u *User) bool { return o.UserID == u.ID }

// CanBeCancelled reports whether the order is still early enough in its
// lifecycle to be cancelled with a stock restore.
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPending || o.Status == OrderProcessing
}

// OrderItem is a single line of an order. Price is the unit price frozen at
// order-creation time, not a live reference to the product's current price.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Product   Product         `json:"-" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
}

// CalculateSubtotal returns unit price times quantity.
func (i *OrderItem) CalculateSubtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderNumber generates a unique human-readable order number, e.g.
// ORD-3F2A9C4D81B0. The suffix is opaque, not sequential.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + suffix[:12]
}
