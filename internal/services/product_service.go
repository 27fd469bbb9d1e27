package services

import (
	"fmt"
	"strings"

	"pasar/internal/apperrors"
	"pasar/internal/authz"
	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/shopspring/decimal"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo    repositories.ProductRepository
	reviews repositories.ReviewRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, reviews repositories.ReviewRepository) *ProductService {
	return &ProductService{
		repo:    repo,
		reviews: reviews,
	}
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=3,max=100"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	Status        string          `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// UpdateProductRequest is the payload for updating a product. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=3,max=100"`
	Description   *string          `json:"description" validate:"omitempty,max=500"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Status        *string          `json:"status" validate:"omitempty,oneof=draft published archived"`
}

// ListProducts retrieves a page of products. Public browsing defaults to
// published products when no status filter is given.
func (s *ProductService) ListProducts(filters repositories.ProductFilters, page, perPage int) (*repositories.ProductPage, error) {
	if filters.Status == "" {
		filters.Status = models.ProductPublished
	}
	result, err := s.repo.List(filters, page, perPage)
	if err != nil {
		return nil, err
	}
	if err := s.attachRatings(result.Products); err != nil {
		return nil, err
	}
	return result, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviews.AverageRating(product.ID)
	if err != nil {
		return nil, err
	}
	product.AverageRating = avg
	return product, nil
}

// VendorProducts retrieves a page of the vendor's own products, any status.
func (s *ProductService) VendorProducts(vendorID string, page, perPage int) (*repositories.ProductPage, error) {
	result, err := s.repo.List(repositories.ProductFilters{VendorID: vendorID}, page, perPage)
	if err != nil {
		return nil, err
	}
	if err := s.attachRatings(result.Products); err != nil {
		return nil, err
	}
	return result, nil
}

// attachRatings fills in the review average for each product on a page.
func (s *ProductService) attachRatings(products []models.Product) error {
	for i := range products {
		avg, err := s.reviews.AverageRating(products[i].ID)
		if err != nil {
			return err
		}
		products[i].AverageRating = avg
	}
	return nil
}

// CreateProduct creates a product owned by the actor. Only vendors and
// admins may create products; status defaults to draft.
func (s *ProductService) CreateProduct(req CreateProductRequest, actor *models.User) (*models.Product, error) {
	if !actor.HasAnyRole(models.RoleVendor, models.RoleAdmin) {
		return nil, apperrors.E(apperrors.Forbidden, "only vendors and admins can create products")
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.E(apperrors.InvalidInput, "price must be greater than zero")
	}
	if req.StockQuantity < 0 {
		return nil, apperrors.E(apperrors.InvalidInput, "stock quantity cannot be negative")
	}

	status := req.Status
	if status == "" {
		status = models.ProductDraft
	}

	slug, err := s.uniqueSlug(req.Name, "")
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		VendorID:      actor.ID,
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Status:        status,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return s.GetProductByID(product.ID)
}

// UpdateProduct updates a product the actor is allowed to modify. The slug
// follows the name when the name changes.
func (s *ProductService) UpdateProduct(id string, req UpdateProductRequest, actor *models.User) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyProduct(product, actor) {
		return nil, apperrors.E(apperrors.Forbidden, "unauthorized to modify this product")
	}

	if req.Name != nil && *req.Name != product.Name {
		slug, err := s.uniqueSlug(*req.Name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Name = *req.Name
		product.Slug = slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apperrors.E(apperrors.InvalidInput, "price must be greater than zero")
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, apperrors.E(apperrors.InvalidInput, "stock quantity cannot be negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return s.GetProductByID(id)
}

// DeleteProduct deletes a product the actor is allowed to modify.
func (s *ProductService) DeleteProduct(id string, actor *models.User) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !authz.CanModifyProduct(product, actor) {
		return apperrors.E(apperrors.Forbidden, "unauthorized to delete this product")
	}
	return s.repo.Delete(id)
}

// uniqueSlug derives a URL slug from name, suffixing a counter until it does
// not collide with another product's slug.
func (s *ProductService) uniqueSlug(name, excludeID string) (string, error) {
	base := slugify(name)
	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.repo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
