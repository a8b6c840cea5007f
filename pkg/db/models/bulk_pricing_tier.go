package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// BulkPricingTier is one quantity-range discount entry. Position preserves
// the seller's list order; the first matching tier wins.
type BulkPricingTier struct {
	ID                  uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID           uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:bulk_pricing_tiers_position_key"`
	Position            int             `gorm:"column:position;not null;uniqueIndex:bulk_pricing_tiers_position_key"`
	MinQuantity         int             `gorm:"column:min_quantity;not null"`
	MaxQuantity         *int            `gorm:"column:max_quantity"`
	DiscountPercentage  decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null;default:0"`
	DiscountAmount      decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	ApplicableUserTypes pq.StringArray  `gorm:"column:applicable_user_types;type:text[];not null;default:'{}'"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
}
