// internal/services/settings_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplyUpdateUnknownKind(t *testing.T) {
	svc := NewSettingsService(nil)

	err := svc.ApplyUpdate(&SettingsUpdateRequest{Kind: "analytics"}, uuid.New())

	var unknownKind *UnknownSettingKindError
	assert.True(t, errors.As(err, &unknownKind))
	assert.Equal(t, "analytics", unknownKind.Kind)
}

func TestApplyUpdateRequiresMatchingPayload(t *testing.T) {
	svc := NewSettingsService(nil)

	for _, kind := range []string{"shipping", "store", "payment", "mail", "faq"} {
		err := svc.ApplyUpdate(&SettingsUpdateRequest{Kind: kind}, uuid.New())

		var badPayload *SettingsPayloadError
		assert.True(t, errors.As(err, &badPayload), "kind %s", kind)
		assert.Equal(t, kind, badPayload.Kind)
	}
}

func TestApplyUpdateRejectsNegativeShippingFees(t *testing.T) {
	svc := NewSettingsService(nil)

	req := &SettingsUpdateRequest{
		Kind: "shipping",
		Shipping: &ShippingConfig{
			DomesticCountry: "GR",
			Domestic:        ShippingRule{FlatFee: -1},
		},
	}

	err := svc.ApplyUpdate(req, uuid.New())

	var badPayload *SettingsPayloadError
	assert.True(t, errors.As(err, &badPayload))
	assert.Contains(t, badPayload.Reason, "negative")
}

func TestApplyUpdateRejectsInvalidStoreContact(t *testing.T) {
	svc := NewSettingsService(nil)

	req := &SettingsUpdateRequest{
		Kind:  "store",
		Store: &StoreContactPayload{Email: "not-an-email"},
	}

	err := svc.ApplyUpdate(req, uuid.New())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
