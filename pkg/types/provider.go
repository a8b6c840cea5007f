package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProviderRecord is the uniform shape for an external integration entry:
// a provider name, its credential blob, and an enabled flag. Real calls to
// these providers are out of scope; the records only configure the mocks.
type ProviderRecord struct {
	Provider    string   `json:"provider"`
	Credentials Document `json:"credentials,omitempty"`
	Enabled     bool     `json:"enabled"`
}

// ProviderList is a JSONB-persisted list of provider records.
type ProviderList []ProviderRecord

// Value marshals the list into JSON for Postgres.
func (p ProviderList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the list.
func (p *ProviderList) Scan(value interface{}) error {
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
		return fmt.Errorf("provider list: unsupported scan type %T", value)
	}

	var result ProviderList
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}
