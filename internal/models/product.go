package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Publication statuses for a product. Only published products can be ordered.
const (
	ProductDraft     = "draft"
	ProductPublished = "published"
	ProductArchived  = "archived"
)

// Product represents a product in the store, owned by a vendor.
type Product struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	VendorID      string          `json:"vendor_id" gorm:"index;type:varchar(36)"`
	Name          string          `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Slug          string          `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description   string          `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:draft" validate:"omitempty,oneof=draft published archived"`
	AverageRating float64         `json:"average_rating" gorm:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Product) IsPublished() bool { return p.Status == ProductPublished }

func (p *Product) IsOwnedBy(u *User) bool { return p.VendorID == u.ID }

func (p *Product) InStock() bool { return p.StockQuantity > 0 }
