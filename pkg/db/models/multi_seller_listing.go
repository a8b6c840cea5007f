package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MultiSellerListing is one seller's offer on a shared logical product.
// The parent product caches the minimum active price in lowest_price.
type MultiSellerListing struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:multi_seller_listings_seller_key"`
	SellerID      uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;uniqueIndex:multi_seller_listings_seller_key"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
