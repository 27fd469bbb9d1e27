package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"pasar/internal/apperrors"
	"pasar/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// List returns a page of products matching the filters, newest first.
func (r *MockProductRepository) List(filters ProductFilters, page, perPage int) (*ProductPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filters.Status != "" && p.Status != filters.Status {
			continue
		}
		if filters.VendorID != "" && p.VendorID != filters.VendorID {
			continue
		}
		if filters.Search != "" &&
			!strings.Contains(p.Name, filters.Search) &&
			!strings.Contains(p.Description, filters.Search) {
			continue
		}
		if filters.MinPrice != nil && p.Price.LessThan(*filters.MinPrice) {
			continue
		}
		if filters.MaxPrice != nil && p.Price.GreaterThan(*filters.MaxPrice) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (page - 1) * perPage
	if start > len(matched) {
		start = len(matched)
	}
	end := start + perPage
	if end > len(matched) {
		end = len(matched)
	}

	return &ProductPage{
		Products:    matched[start:end],
		CurrentPage: page,
		LastPage:    lastPage(total, perPage),
		Total:       total,
	}, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "product with ID %s not found", id)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return apperrors.E(apperrors.NotFound, "product with ID %s not found for update", product.ID)
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return apperrors.E(apperrors.NotFound, "product with ID %s not found for deletion", id)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock subtracts qty from a product's stock, failing when the
// remaining stock does not cover qty.
func (r *MockProductRepository) DecrementStock(id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "product with ID %s not found", id)
	}
	if product.StockQuantity < qty {
		return apperrors.E(apperrors.InsufficientStock, "insufficient stock for product %s", id)
	}
	product.StockQuantity -= qty
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// IncrementStock adds qty back to a product's stock.
func (r *MockProductRepository) IncrementStock(id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "product with ID %s not found", id)
	}
	product.StockQuantity += qty
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return nil
}

// SlugExists reports whether another product already uses slug.
func (r *MockProductRepository) SlugExists(slug, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the total number of products.
func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *MockProductRepository) snapshot() map[string]models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Product, len(r.products))
	for id, p := range r.products {
		snap[id] = p
	}
	return snap
}

func (r *MockProductRepository) restore(snap map[string]models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = snap
}
