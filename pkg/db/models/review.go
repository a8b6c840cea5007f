package models

import (
	"time"

	"github.com/google/uuid"
)

// Review belongs to one product and one user. The verified-purchase flag is
// computed once at creation and never flipped retroactively.
type Review struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID  `gorm:"column:product_id;type:uuid;not null;uniqueIndex:reviews_user_product_key"`
	UserID             uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:reviews_user_product_key"`
	OrderID            *uuid.UUID `gorm:"column:order_id;type:uuid"`
	Rating             int        `gorm:"column:rating;not null"`
	Title              string     `gorm:"column:title;not null;default:''"`
	Comment            string     `gorm:"column:comment;not null;default:''"`
	IsVerifiedPurchase bool       `gorm:"column:is_verified_purchase;not null;default:false"`
	HelpfulCount       int        `gorm:"column:helpful_count;not null;default:0"`
	UnhelpfulCount     int        `gorm:"column:unhelpful_count;not null;default:0"`
	SellerResponse     *string    `gorm:"column:seller_response"`
	SellerResponseAt   *time.Time `gorm:"column:seller_response_at"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
