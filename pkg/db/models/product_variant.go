package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// ProductVariant is a purchasable variation with its own stock and an
// optional final price overriding the parent's computed price.
type ProductVariant struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index:product_variants_product_idx"`
	Name          string           `gorm:"column:name;not null"`
	SKU           *string          `gorm:"column:sku"`
	Attributes    types.Document   `gorm:"column:attributes;type:jsonb;not null;default:'{}'"`
	Price         *decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	StockQuantity int              `gorm:"column:stock_quantity;not null;default:0"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
}
