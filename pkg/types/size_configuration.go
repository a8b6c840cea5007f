package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rkhandelwal/tradebazaar-backend/pkg/enums"
)

// Dimensions is a length/width/height triple in the configured unit.
type Dimensions struct {
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
}

// Value marshals the dimensions into JSON for Postgres.
func (d Dimensions) Value() (driver.Value, error) {
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the dimensions.
func (d *Dimensions) Scan(value interface{}) error {
	if value == nil {
		*d = Dimensions{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("dimensions: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, d)
}

// SizeConfiguration describes how a product may be sized and priced,
// persisted as a single JSONB column.
type SizeConfiguration struct {
	SizeType           enums.SizeType      `json:"size_type"`
	Unit               string              `json:"unit"`
	StandardSizes      []string            `json:"standard_sizes,omitempty"`
	PricingMethod      enums.PricingMethod `json:"pricing_method"`
	CustomPricePerUnit decimal.Decimal     `json:"custom_price_per_unit"`
	CustomMinDims      *Dimensions         `json:"custom_min_dimensions,omitempty"`
	CustomMaxDims      *Dimensions         `json:"custom_max_dimensions,omitempty"`
}

// Value marshals the configuration into JSON for Postgres.
func (s SizeConfiguration) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the configuration.
func (s *SizeConfiguration) Scan(value interface{}) error {
	if value == nil {
		*s = SizeConfiguration{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("size configuration: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, s)
}
