package repositories

import (
	"pasar/internal/models"
)

// OrderFilters narrows the result set of OrderRepository.List.
type OrderFilters struct {
	UserID string // restrict to orders placed by this user
	Status string
	Search string // matches against order_number
}

// OrderPage is one page of orders plus pagination metadata.
type OrderPage struct {
	Orders      []models.Order
	CurrentPage int
	LastPage    int
	Total       int64
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	List(filters OrderFilters, page, perPage int) (*OrderPage, error)
	UpdateStatus(id string, status models.OrderStatus) error
	// VendorIDs returns the distinct vendor IDs of the products referenced by
	// the order's items. It backs the stake-holding-vendor authorization
	// check without walking order -> items -> product relations in memory.
	VendorIDs(orderID string) ([]string, error)
	Count() (int64, error)
}

// UnitOfWork runs fn against order and product repositories inside a single
// atomic scope: every write made through the repositories handed to fn is
// committed together or rolled back together.
type UnitOfWork interface {
	Do(fn func(orders OrderRepository, products ProductRepository) error) error
}
