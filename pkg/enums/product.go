package enums

import "fmt"

// ApprovalStatus gates a product listing before it becomes publicly queryable.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

var validApprovalStatuses = []ApprovalStatus{
	ApprovalStatusPending,
	ApprovalStatusApproved,
	ApprovalStatusRejected,
}

// String implements fmt.Stringer.
func (a ApprovalStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ApprovalStatus.
func (a ApprovalStatus) IsValid() bool {
	for _, candidate := range validApprovalStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseApprovalStatus converts raw input into an ApprovalStatus.
func ParseApprovalStatus(value string) (ApprovalStatus, error) {
	for _, candidate := range validApprovalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid approval status %q", value)
}

// SizeType declares which sizing modes a product supports.
type SizeType string

const (
	SizeTypeStandard SizeType = "standard"
	SizeTypeCustom   SizeType = "custom"
	SizeTypeBoth     SizeType = "both"
)

var validSizeTypes = []SizeType{
	SizeTypeStandard,
	SizeTypeCustom,
	SizeTypeBoth,
}

// String implements fmt.Stringer.
func (s SizeType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SizeType.
func (s SizeType) IsValid() bool {
	for _, candidate := range validSizeTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// AllowsCustom reports whether custom dimensions may be priced.
func (s SizeType) AllowsCustom() bool {
	return s == SizeTypeCustom || s == SizeTypeBoth
}

// ParseSizeType converts raw input into a SizeType.
func ParseSizeType(value string) (SizeType, error) {
	for _, candidate := range validSizeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid size type %q", value)
}

// PricingMethod selects how a custom-size measure is computed from dimensions.
type PricingMethod string

const (
	PricingMethodPerCubicInch  PricingMethod = "per_cubic_inch"
	PricingMethodPerSquareFoot PricingMethod = "per_square_foot"
	PricingMethodPerLinearFoot PricingMethod = "per_linear_foot"
	PricingMethodFlatRate      PricingMethod = "flat_rate"
)

var validPricingMethods = []PricingMethod{
	PricingMethodPerCubicInch,
	PricingMethodPerSquareFoot,
	PricingMethodPerLinearFoot,
	PricingMethodFlatRate,
}

// String implements fmt.Stringer.
func (p PricingMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PricingMethod.
func (p PricingMethod) IsValid() bool {
	for _, candidate := range validPricingMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingMethod converts raw input into a PricingMethod.
func ParsePricingMethod(value string) (PricingMethod, error) {
	for _, candidate := range validPricingMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing method %q", value)
}

// SortKey enumerates the catalog sort orders.
type SortKey string

const (
	SortKeyNewest     SortKey = "created_at"
	SortKeyPriceLow   SortKey = "price_low"
	SortKeyPriceHigh  SortKey = "price_high"
	SortKeyRating     SortKey = "rating"
	SortKeyPopularity SortKey = "popularity"
	SortKeyRelevance  SortKey = "relevance"
	SortKeyTrending   SortKey = "trending"
)

var validSortKeys = []SortKey{
	SortKeyNewest,
	SortKeyPriceLow,
	SortKeyPriceHigh,
	SortKeyRating,
	SortKeyPopularity,
	SortKeyRelevance,
	SortKeyTrending,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Unknown values fall back
// to SortKeyNewest so stale clients keep working.
func ParseSortKey(value string) SortKey {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate
		}
	}
	return SortKeyNewest
}
