package authz_test

import (
	"testing"

	"pasar/internal/authz"
	"pasar/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanViewOrder(t *testing.T) {
	order := &models.Order{ID: "order-1", UserID: "customer-1"}
	vendorIDs := []string{"vendor-1", "vendor-2"}

	tests := []struct {
		name    string
		actor   *models.User
		allowed bool
	}{
		{"admin sees every order", &models.User{ID: "admin-1", Role: models.RoleAdmin}, true},
		{"stake-holding vendor", &models.User{ID: "vendor-1", Role: models.RoleVendor}, true},
		{"unrelated vendor", &models.User{ID: "vendor-9", Role: models.RoleVendor}, false},
		{"owning customer", &models.User{ID: "customer-1", Role: models.RoleCustomer}, true},
		{"other customer", &models.User{ID: "customer-2", Role: models.RoleCustomer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, authz.CanViewOrder(order, tt.actor, vendorIDs))
		})
	}
}

func TestCanModifyOrder(t *testing.T) {
	order := &models.Order{ID: "order-1", UserID: "customer-1"}
	vendorIDs := []string{"vendor-1"}

	tests := []struct {
		name    string
		actor   *models.User
		allowed bool
	}{
		{"admin", &models.User{ID: "admin-1", Role: models.RoleAdmin}, true},
		{"stake-holding vendor", &models.User{ID: "vendor-1", Role: models.RoleVendor}, true},
		{"unrelated vendor", &models.User{ID: "vendor-9", Role: models.RoleVendor}, false},
		{"owning customer", &models.User{ID: "customer-1", Role: models.RoleCustomer}, true},
		{"other customer", &models.User{ID: "customer-2", Role: models.RoleCustomer}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, authz.CanModifyOrder(order, tt.actor, vendorIDs))
		})
	}
}

func TestCanModifyOrderNoVendorStake(t *testing.T) {
	// A vendor owning the order as a customer would still be allowed through
	// the ownership clause, but a vendor with no stake and no ownership is not.
	order := &models.Order{ID: "order-1", UserID: "vendor-1"}
	actor := &models.User{ID: "vendor-1", Role: models.RoleVendor}

	assert.True(t, authz.CanViewOrder(order, actor, nil))
	assert.False(t, authz.CanModifyOrder(order, actor, nil))
}

func TestCanModifyProduct(t *testing.T) {
	product := &models.Product{ID: "prod-1", VendorID: "vendor-1"}

	assert.True(t, authz.CanModifyProduct(product, &models.User{ID: "admin-1", Role: models.RoleAdmin}))
	assert.True(t, authz.CanModifyProduct(product, &models.User{ID: "vendor-1", Role: models.RoleVendor}))
	assert.False(t, authz.CanModifyProduct(product, &models.User{ID: "vendor-2", Role: models.RoleVendor}))
	assert.False(t, authz.CanModifyProduct(product, &models.User{ID: "vendor-1", Role: models.RoleCustomer}))
}

func TestCanModifyReview(t *testing.T) {
	review := &models.Review{ID: "rev-1", UserID: "customer-1"}

	assert.True(t, authz.CanModifyReview(review, &models.User{ID: "admin-1", Role: models.RoleAdmin}))
	assert.True(t, authz.CanModifyReview(review, &models.User{ID: "customer-1", Role: models.RoleCustomer}))
	assert.False(t, authz.CanModifyReview(review, &models.User{ID: "customer-2", Role: models.RoleCustomer}))
}
