package repositories

import (
	"gorm.io/gorm"
)

// GORMUnitOfWork backs UnitOfWork with a database transaction. The order and
// product repositories handed to fn are bound to the transaction, so stock
// decrements and order/item inserts commit or roll back as one unit.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a new instance of GORMUnitOfWork.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{
		db: db,
	}
}

// Do runs fn inside a transaction. Any error from fn aborts the transaction
// and is returned unchanged so callers can still branch on its kind.
func (u *GORMUnitOfWork) Do(fn func(orders OrderRepository, products ProductRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMOrderRepository(tx), NewGORMProductRepository(tx))
	})
}
