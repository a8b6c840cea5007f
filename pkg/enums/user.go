package enums

import "fmt"

// UserType represents the buyer or partner classification assigned at registration.
type UserType string

const (
	UserTypeEndCustomer     UserType = "end_customer"
	UserTypeReseller        UserType = "reseller"
	UserTypeWholesaler      UserType = "wholesaler"
	UserTypeBulkBuyer       UserType = "bulk_buyer"
	UserTypePremiumMember   UserType = "premium_member"
	UserTypeManufacturer    UserType = "manufacturer"
	UserTypeRetailer        UserType = "retailer"
	UserTypeArtist          UserType = "artist"
	UserTypeDropShipper     UserType = "drop_shipper"
	UserTypeWhiteLabel      UserType = "white_label"
	UserTypeServiceProvider UserType = "service_provider"
	UserTypeUnifiedSeller   UserType = "unified_seller"
	UserTypeAdmin           UserType = "admin"
)

var validUserTypes = []UserType{
	UserTypeEndCustomer,
	UserTypeReseller,
	UserTypeWholesaler,
	UserTypeBulkBuyer,
	UserTypePremiumMember,
	UserTypeManufacturer,
	UserTypeRetailer,
	UserTypeArtist,
	UserTypeDropShipper,
	UserTypeWhiteLabel,
	UserTypeServiceProvider,
	UserTypeUnifiedSeller,
	UserTypeAdmin,
}

var partnerUserTypes = map[UserType]bool{
	UserTypeManufacturer:    true,
	UserTypeRetailer:        true,
	UserTypeArtist:          true,
	UserTypeDropShipper:     true,
	UserTypeWhiteLabel:      true,
	UserTypeServiceProvider: true,
	UserTypeUnifiedSeller:   true,
}

// String implements fmt.Stringer.
func (u UserType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserType.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsPartner reports whether the type sells on the marketplace and therefore
// requires admin verification before it may log in or list products.
func (u UserType) IsPartner() bool {
	return partnerUserTypes[u]
}

// ParseUserType converts raw input into a UserType.
func ParseUserType(value string) (UserType, error) {
	for _, candidate := range validUserTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}

// RegistrationType distinguishes the two onboarding flows.
type RegistrationType string

const (
	RegistrationTypeBuyer   RegistrationType = "buyer"
	RegistrationTypePartner RegistrationType = "partner"
)

var validRegistrationTypes = []RegistrationType{
	RegistrationTypeBuyer,
	RegistrationTypePartner,
}

// String implements fmt.Stringer.
func (r RegistrationType) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RegistrationType.
func (r RegistrationType) IsValid() bool {
	for _, candidate := range validRegistrationTypes {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRegistrationType converts raw input into a RegistrationType.
func ParseRegistrationType(value string) (RegistrationType, error) {
	for _, candidate := range validRegistrationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid registration type %q", value)
}

// VerificationStatus tracks the admin review of a partner account.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusVerified,
	VerificationStatusRejected,
}

// String implements fmt.Stringer.
func (v VerificationStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VerificationStatus.
func (v VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVerificationStatus converts raw input into a VerificationStatus.
func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}
