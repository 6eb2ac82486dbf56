// internal/services/shipping.go
package services

import "strings"

// ShippingRule is one side of the destination-based shipping policy: a flat
// fee waived above the free-shipping threshold. A zero FreeOver means shipping
// is never free for that destination class.
type ShippingRule struct {
	FlatFee  float64 `json:"flat_fee"`
	FreeOver float64 `json:"free_over"`
}

// ShippingConfig holds the store's shipping rules as edited by staff.
type ShippingConfig struct {
	DomesticCountry string       `json:"domestic_country"`
	Domestic        ShippingRule `json:"domestic"`
	International   ShippingRule `json:"international"`
}

// IsDomestic classifies a destination by a case-insensitive country-code /
// substring test against the configured domestic country.
func (c ShippingConfig) IsDomestic(country string) bool {
	home := strings.ToUpper(strings.TrimSpace(c.DomesticCountry))
	if home == "" {
		return false
	}
	dest := strings.ToUpper(strings.TrimSpace(country))
	return dest == home || strings.Contains(dest, home)
}

// Cost returns the shipping cost for a subtotal shipped to country.
func (c ShippingConfig) Cost(country string, subtotal float64) float64 {
	rule := c.International
	if c.IsDomestic(country) {
		rule = c.Domestic
	}

	if rule.FreeOver > 0 && subtotal >= rule.FreeOver {
		return 0
	}
	return rule.FlatFee
}
