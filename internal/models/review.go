package models

import "time"

// Review is a customer rating for a product. A user may review a product once.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_reviews_product_user"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_reviews_product_user"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" gorm:"type:varchar(1000)" validate:"omitempty,max=1000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) IsAuthoredBy(u *User) bool { return r.UserID == u.ID }
