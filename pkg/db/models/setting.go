package models

import (
	"time"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/types"
)

// Setting is a singleton configuration row keyed by a fixed id string such
// as "payment_settings". The payload shape varies per kind.
type Setting struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Payload   types.Document `gorm:"column:payload;type:jsonb;not null;default:'{}'"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
