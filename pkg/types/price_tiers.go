package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceTiers maps a user-type name to an explicit unit price, persisted as
// JSONB. An entry here wins verbatim over the discount schedule.
type PriceTiers map[string]decimal.Decimal

// Value marshals the map into JSON for Postgres.
func (p PriceTiers) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (p *PriceTiers) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("price tiers: unsupported scan type %T", value)
	}

	result := make(PriceTiers)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}
