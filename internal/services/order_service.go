package services

import (
	"log"

	"pasar/internal/apperrors"
	"pasar/internal/authz"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// OrderService is the order workflow engine: it validates order requests
// against inventory, computes pricing, runs the atomic creation and
// cancellation transactions, and enforces the status state machine and the
// per-role authorization policy. Every call takes an explicit actor; the
// service never reads ambient identity.
type OrderService struct {
	uow         repositories.UnitOfWork
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(uow repositories.UnitOfWork, orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		uow:         uow,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder places an order for the actor. Product lookups, stock
// decrements, and the order/item inserts run inside one unit of work: any
// failure rolls back every stock decrement made so far and no order rows
// persist.
func (s *OrderService) CreateOrder(req CreateOrderRequest, actor *models.User) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.E(apperrors.InvalidInput, "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, apperrors.E(apperrors.InvalidInput, "each item needs a product_id and a quantity of at least 1")
		}
	}

	var orderID string
	err := s.uow.Do(func(orders repositories.OrderRepository, products repositories.ProductRepository) error {
		totalAmount := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(req.Items))

		for _, item := range req.Items {
			product, err := products.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsPublished() {
				return apperrors.E(apperrors.Unavailable, "product %s is not available", product.Name)
			}
			if product.StockQuantity < item.Quantity {
				return apperrors.E(apperrors.InsufficientStock, "insufficient stock for product: %s", product.Name)
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totalAmount = totalAmount.Add(subtotal)

			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Subtotal:  subtotal,
			})

			if err := products.DecrementStock(product.ID, item.Quantity); err != nil {
				return err
			}
		}

		order := &models.Order{
			UserID:      actor.ID,
			OrderNumber: models.NewOrderNumber(),
			Status:      models.OrderPending,
			TotalAmount: totalAmount,
			Items:       orderItems,
		}
		if err := orders.Create(order); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.EventOrderCreated, created)
	return created, nil
}

// GetOrderByID retrieves a single order, enforcing the view policy.
func (s *OrderService) GetOrderByID(id string, actor *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	vendorIDs, err := s.orderRepo.VendorIDs(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewOrder(order, actor, vendorIDs) {
		return nil, apperrors.E(apperrors.Forbidden, "unauthorized to view this order")
	}
	return order, nil
}

// ListOrders retrieves a page of orders. Customers only ever see their own.
func (s *OrderService) ListOrders(filters repositories.OrderFilters, actor *models.User, page, perPage int) (*repositories.OrderPage, error) {
	if actor.IsCustomer() {
		filters.UserID = actor.ID
	}
	return s.orderRepo.List(filters, page, perPage)
}

// UpdateOrderStatus transitions the order to newStatus. The actor must pass
// the modify policy and newStatus must be a direct allowed successor of the
// current status. No side effects beyond the status field and updated_at.
func (s *OrderService) UpdateOrderStatus(id string, newStatus models.OrderStatus, actor *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	vendorIDs, err := s.orderRepo.VendorIDs(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyOrder(order, actor, vendorIDs) {
		return nil, apperrors.E(apperrors.Forbidden, "unauthorized to modify this order")
	}

	if !newStatus.Valid() {
		return nil, apperrors.E(apperrors.InvalidInput, "invalid order status: %s", newStatus)
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return nil, apperrors.E(apperrors.InvalidTransition, "cannot change status from %s to %s", order.Status, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.EventOrderStatusUpdated, updated)
	return updated, nil
}

// CancelOrder cancels a pending or processing order, restoring each line
// item's quantity to its product's stock. The stock restores and the status
// update run inside one unit of work, the inverse of the creation
// transaction.
func (s *OrderService) CancelOrder(id string, actor *models.User) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	vendorIDs, err := s.orderRepo.VendorIDs(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyOrder(order, actor, vendorIDs) {
		return nil, apperrors.E(apperrors.Forbidden, "unauthorized to cancel this order")
	}

	if !order.CanBeCancelled() {
		return nil, apperrors.E(apperrors.InvalidState, "cannot cancel order with status: %s", order.Status)
	}

	err = s.uow.Do(func(orders repositories.OrderRepository, products repositories.ProductRepository) error {
		for _, item := range order.Items {
			if err := products.IncrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return orders.UpdateStatus(id, models.OrderCancelled)
	})
	if err != nil {
		return nil, err
	}

	cancelled, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(rabbitmq.EventOrderCancelled, cancelled)
	return cancelled, nil
}

// publishEvent publishes an order lifecycle event. Publication is best
// effort: a broker failure never fails the request that triggered it.
func (s *OrderService) publishEvent(eventType string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	}
	if err := s.mqClient.PublishOrderEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
