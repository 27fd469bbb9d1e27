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

// MockOrderRepository is an in-memory implementation of OrderRepository. It
// holds a reference to the product repository so VendorIDs can resolve item
// products the way the SQL join does.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products *MockProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// Create adds a new order with its items.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

// GetByID returns an order by its ID with item products resolved.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "order with ID %s not found", id)
	}
	out := copyOrder(order)
	if r.products != nil {
		for i := range out.Items {
			if p, err := r.products.GetByID(out.Items[i].ProductID); err == nil {
				out.Items[i].Product = *p
			}
		}
	}
	return &out, nil
}

// List returns a page of orders matching the filters, newest first.
func (r *MockOrderRepository) List(filters OrderFilters, page, perPage int) (*OrderPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	matched := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filters.UserID != "" && order.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && string(order.Status) != filters.Status {
			continue
		}
		if filters.Search != "" && !strings.Contains(order.OrderNumber, filters.Search) {
			continue
		}
		matched = append(matched, copyOrder(order))
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

	return &OrderPage{
		Orders:      matched[start:end],
		CurrentPage: page,
		LastPage:    lastPage(total, perPage),
		Total:       total,
	}, nil
}

// UpdateStatus sets the status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperrors.E(apperrors.NotFound, "order with ID %s not found", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// VendorIDs returns the distinct vendor IDs of the products referenced by the
// order's items.
func (r *MockOrderRepository) VendorIDs(orderID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, apperrors.E(apperrors.NotFound, "order with ID %s not found", orderID)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, item := range order.Items {
		if r.products == nil {
			continue
		}
		product, err := r.products.GetByID(item.ProductID)
		if err != nil {
			continue
		}
		if !seen[product.VendorID] {
			seen[product.VendorID] = true
			ids = append(ids, product.VendorID)
		}
	}
	return ids, nil
}

// Count returns the total number of orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *MockOrderRepository) snapshot() map[string]models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Order, len(r.orders))
	for id, order := range r.orders {
		snap[id] = copyOrder(order)
	}
	return snap
}

func (r *MockOrderRepository) restore(snap map[string]models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}

func copyOrder(order models.Order) models.Order {
	items := make([]models.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}
