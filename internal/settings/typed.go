package settings

// ShippingSettings is the typed view of the shipping_settings payload.
// Amounts travel as strings so the JSONB round-trip never loses precision.
type ShippingSettings struct {
	FreeShippingThreshold string `json:"free_shipping_threshold"`
	FlatShippingFee       string `json:"flat_shipping_fee"`
}

// PaymentSettings is the typed view of the payment_settings payload.
type PaymentSettings struct {
	CODEnabled    bool `json:"cod_enabled"`
	OnlineEnabled bool `json:"online_enabled"`
}

// AISettings picks the provider for the content and image generators.
type AISettings struct {
	Provider string `json:"provider"`
}

// NotificationSettings toggles the outbound channels.
type NotificationSettings struct {
	EmailEnabled bool `json:"email_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
}

// CommissionSettings is the typed view of the commission_settings payload.
type CommissionSettings struct {
	DefaultRatePercent string `json:"default_rate_percent"`
}

// Shipping decodes the shipping settings snapshot.
func (s *Store) Shipping() (ShippingSettings, error) {
	var out ShippingSettings
	err := s.Decode(KindShipping, &out)
	return out, err
}

// Payment decodes the payment settings snapshot.
func (s *Store) Payment() (PaymentSettings, error) {
	var out PaymentSettings
	err := s.Decode(KindPayment, &out)
	return out, err
}

// AI decodes the AI settings snapshot.
func (s *Store) AI() (AISettings, error) {
	var out AISettings
	err := s.Decode(KindAI, &out)
	return out, err
}
