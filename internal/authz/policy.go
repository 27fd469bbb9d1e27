// Package authz holds the pure authorization policy for orders. Callers pass
// in the vendor IDs referenced by the order's items (answered by
// OrderRepository.VendorIDs) so the policy itself never touches persistence.
package authz

import "pasar/internal/models"

// CanViewOrder reports whether actor may read the order. Admins see every
// order, a vendor sees orders containing at least one of their products, and
// a customer sees their own orders.
func CanViewOrder(order *models.Order, actor *models.User, vendorIDs []string) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsVendor() && containsID(vendorIDs, actor.ID) {
		return true
	}
	return order.IsOwnedBy(actor)
}

// CanModifyOrder uses the same clauses as CanViewOrder: admins and
// stake-holding vendors drive status transitions, and a customer may cancel
// their own order.
func CanModifyOrder(order *models.Order, actor *models.User, vendorIDs []string) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.IsVendor() && containsID(vendorIDs, actor.ID) {
		return true
	}
	return actor.IsCustomer() && order.IsOwnedBy(actor)
}

// CanModifyProduct reports whether actor may update or delete the product.
func CanModifyProduct(product *models.Product, actor *models.User) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.IsVendor() && product.IsOwnedBy(actor)
}

// CanModifyReview reports whether actor may update or delete the review.
func CanModifyReview(review *models.Review, actor *models.User) bool {
	return actor.IsAdmin() || review.IsAuthoredBy(actor)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
