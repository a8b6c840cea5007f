package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RatingBreakdown counts reviews per star value ("1".."5"), persisted as JSONB.
type RatingBreakdown map[string]int

// Value marshals the map into JSON for Postgres.
func (r RatingBreakdown) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (r *RatingBreakdown) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("rating breakdown: unsupported scan type %T", value)
	}

	result := make(RatingBreakdown)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*r = result
	return nil
}
