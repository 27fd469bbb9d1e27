package services

import (
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// AdminService handles business logic for the admin oversight endpoints.
type AdminService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Statistics is the storewide totals payload for the admin dashboard.
type Statistics struct {
	TotalUsers     int64 `json:"total_users"`
	TotalCustomers int64 `json:"total_customers"`
	TotalVendors   int64 `json:"total_vendors"`
	TotalAdmins    int64 `json:"total_admins"`
	TotalProducts  int64 `json:"total_products"`
	TotalOrders    int64 `json:"total_orders"`
}

// GetUsers retrieves a page of users plus the total count.
func (s *AdminService) GetUsers(page, perPage int) ([]models.User, int64, error) {
	return s.userRepo.List(page, perPage)
}

// GetStatistics collects the storewide totals.
func (s *AdminService) GetStatistics() (*Statistics, error) {
	stats := &Statistics{}

	var err error
	if stats.TotalUsers, err = s.userRepo.CountByRole(""); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.userRepo.CountByRole(models.RoleCustomer); err != nil {
		return nil, err
	}
	if stats.TotalVendors, err = s.userRepo.CountByRole(models.RoleVendor); err != nil {
		return nil, err
	}
	if stats.TotalAdmins, err = s.userRepo.CountByRole(models.RoleAdmin); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.productRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}
