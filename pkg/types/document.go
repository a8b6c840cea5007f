package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Document is an open key/value map persisted as JSONB. It backs the
// genuinely unconstrained extension fields (specifications, custom fields,
// settings payloads) where no fixed schema exists.
type Document map[string]any

// Value marshals the map into JSON for Postgres.
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("document: unsupported scan type %T", value)
	}

	result := make(Document)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*d = result
	return nil
}
