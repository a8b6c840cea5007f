package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// CartItem references a live product; prices are resolved at checkout, not
// stored here. Custom dimensions ride along for custom-size products.
type CartItem struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID           uuid.UUID         `gorm:"column:cart_id;type:uuid;not null"`
	ProductID        uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	VariantID        *uuid.UUID        `gorm:"column:variant_id;type:uuid"`
	Quantity         int               `gorm:"column:quantity;not null;default:1"`
	CustomDimensions *types.Dimensions `gorm:"column:custom_dimensions;type:jsonb"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
