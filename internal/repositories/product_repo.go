package repositories

import (
	"pasar/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilters narrows the result set of ProductRepository.List.
type ProductFilters struct {
	Status   string
	VendorID string
	Search   string // matches name or description
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductPage is one page of products plus pagination metadata.
type ProductPage struct {
	Products    []models.Product
	CurrentPage int
	LastPage    int
	Total       int64
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(filters ProductFilters, page, perPage int) (*ProductPage, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock atomically subtracts qty from the product's stock. It
	// fails with InsufficientStock when the remaining stock does not cover
	// qty, leaving the row untouched.
	DecrementStock(id string, qty int) error
	// IncrementStock atomically adds qty back to the product's stock.
	IncrementStock(id string, qty int) error
	SlugExists(slug, excludeID string) (bool, error)
	Count() (int64, error)
}
