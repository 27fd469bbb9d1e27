package repositories

// MockUnitOfWork runs fn against the in-memory repositories. State is
// snapshotted before fn and restored when fn fails, mirroring the rollback a
// database transaction would perform.
type MockUnitOfWork struct {
	Orders   *MockOrderRepository
	Products *MockProductRepository
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork.
func NewMockUnitOfWork(orders *MockOrderRepository, products *MockProductRepository) *MockUnitOfWork {
	return &MockUnitOfWork{
		Orders:   orders,
		Products: products,
	}
}

// Do runs fn, restoring both repositories to their prior state on error.
func (u *MockUnitOfWork) Do(fn func(orders OrderRepository, products ProductRepository) error) error {
	ordersSnap := u.Orders.snapshot()
	productsSnap := u.Products.snapshot()

	if err := fn(u.Orders, u.Products); err != nil {
		u.Orders.restore(ordersSnap)
		u.Products.restore(productsSnap)
		return err
	}
	return nil
}
