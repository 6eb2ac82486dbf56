// internal/services/settings_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenwear/storefront-backend/internal/models"
	"github.com/lumenwear/storefront-backend/internal/utils"
)

type SettingsService struct {
	db *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{db: db}
}

// SettingsUpdateRequest is a tagged-variant settings mutation: Kind selects
// which payload applies, and a kind without a registered handler is a
// validation error rather than a silent no-op.
type SettingsUpdateRequest struct {
	Kind     string                `json:"type" validate:"required"`
	Shipping *ShippingConfig       `json:"shipping,omitempty"`
	Store    *StoreContactPayload  `json:"store,omitempty"`
	Payment  *PaymentOptionsPayload `json:"payment,omitempty"`
	Mail     *MailOptionsPayload   `json:"mail,omitempty"`
	FAQ      []FAQPayload          `json:"faq,omitempty"`
}

type StoreContactPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type PaymentOptionsPayload struct {
	CardEnabled    bool `json:"card_enabled"`
	CashOnDelivery bool `json:"cash_on_delivery"`
}

type MailOptionsPayload struct {
	OrderConfirmation    bool `json:"order_confirmation"`
	ShippingNotification bool `json:"shipping_notification"`
}

type FAQPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// StorefrontConfig is the read-only configuration slice of the storefront
// snapshot consumed by the web client.
type StorefrontConfig struct {
	Shipping ShippingConfig        `json:"shipping"`
	Store    StoreContactPayload   `json:"store"`
	Payment  PaymentOptionsPayload `json:"payment"`
	FAQ      []models.FAQEntry     `json:"faq"`
}

// ApplyUpdate dispatches a settings mutation on its kind tag. Each kind
// requires its matching payload; anything else is rejected up front.
func (s *SettingsService) ApplyUpdate(req *SettingsUpdateRequest, staffID uuid.UUID) error {
	switch req.Kind {
	case "shipping":
		if req.Shipping == nil {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "shipping payload is required"}
		}
		if req.Shipping.Domestic.FlatFee < 0 || req.Shipping.International.FlatFee < 0 {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "shipping fees must not be negative"}
		}
		return s.putSetting("shipping", "rules", toJSONB(req.Shipping), staffID)

	case "store":
		if req.Store == nil {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "store payload is required"}
		}
		if err := utils.ValidateStruct(req.Store); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return s.putSetting("store", "contact", toJSONB(req.Store), staffID)

	case "payment":
		if req.Payment == nil {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "payment payload is required"}
		}
		return s.putSetting("payment", "options", toJSONB(req.Payment), staffID)

	case "mail":
		if req.Mail == nil {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "mail payload is required"}
		}
		return s.putSetting("mail", "options", toJSONB(req.Mail), staffID)

	case "faq":
		if req.FAQ == nil {
			return &SettingsPayloadError{Kind: req.Kind, Reason: "faq payload is required"}
		}
		for _, entry := range req.FAQ {
			if err := utils.ValidateStruct(&entry); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
		return s.replaceFAQ(req.FAQ)

	default:
		return &UnknownSettingKindError{Kind: req.Kind}
	}
}

func (s *SettingsService) putSetting(category, key string, value models.JSONB, staffID uuid.UUID) error {
	var setting models.AppSetting
	err := s.db.Where("category = ? AND key = ?", category, key).First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.AppSetting{
			Category:  category,
			Key:       key,
			Value:     value,
			UpdatedBy: staffID,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting: %w", err)
		}
		return nil
	} else if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	setting.Value = value
	setting.UpdatedBy = staffID
	if err := s.db.Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	return nil
}

func (s *SettingsService) replaceFAQ(entries []FAQPayload) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.FAQEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear faq entries: %w", err)
		}
		for i, entry := range entries {
			row := models.FAQEntry{
				Question: entry.Question,
				Answer:   entry.Answer,
				Position: i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create faq entry: %w", err)
			}
		}
		return nil
	})
}

// ShippingConfig loads the shipping rules. It accepts the handle to run on so
// the order transaction can read the rules inside its own tx.
func (s *SettingsService) ShippingConfig(db *gorm.DB) (ShippingConfig, error) {
	if db == nil {
		db = s.db
	}

	var setting models.AppSetting
	err := db.Where("category = ? AND key = ?", "shipping", "rules").First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No rules configured yet: ship free everywhere rather than block checkout.
		return ShippingConfig{}, nil
	}
	if err != nil {
		return ShippingConfig{}, fmt.Errorf("failed to load shipping rules: %w", err)
	}

	var cfg ShippingConfig
	if err := decodeJSONB(setting.Value, &cfg); err != nil {
		return ShippingConfig{}, fmt.Errorf("failed to decode shipping rules: %w", err)
	}
	return cfg, nil
}

// MailOptions returns the transactional mail toggles, defaulting to enabled.
func (s *SettingsService) MailOptions() MailOptionsPayload {
	opts := MailOptionsPayload{OrderConfirmation: true, ShippingNotification: true}

	var setting models.AppSetting
	err := s.db.Where("category = ? AND key = ?", "mail", "options").First(&setting).Error
	if err != nil {
		return opts
	}

	if err := decodeJSONB(setting.Value, &opts); err != nil {
		return MailOptionsPayload{OrderConfirmation: true, ShippingNotification: true}
	}
	return opts
}

// StorefrontConfig assembles the configuration slice of the public snapshot.
func (s *SettingsService) StorefrontConfig() (*StorefrontConfig, error) {
	cfg := &StorefrontConfig{}

	shipping, err := s.ShippingConfig(nil)
	if err != nil {
		return nil, err
	}
	cfg.Shipping = shipping

	var settings []models.AppSetting
	if err := s.db.Where("category IN ?", []string{"store", "payment"}).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	for _, setting := range settings {
		switch setting.Category {
		case "store":
			decodeJSONB(setting.Value, &cfg.Store)
		case "payment":
			decodeJSONB(setting.Value, &cfg.Payment)
		}
	}

	if err := s.db.Order("position ASC").Find(&cfg.FAQ).Error; err != nil {
		return nil, fmt.Errorf("failed to load faq entries: %w", err)
	}

	return cfg, nil
}

// GetSettings returns all settings keyed as "category.key" for the admin UI.
func (s *SettingsService) GetSettings() (map[string]models.AppSetting, error) {
	var settings []models.AppSetting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	settingsMap := make(map[string]models.AppSetting)
	for _, setting := range settings {
		key := fmt.Sprintf("%s.%s", setting.Category, setting.Key)
		settingsMap[key] = setting
	}

	return settingsMap, nil
}

// JSONB round-trip helpers

func toJSONB(v interface{}) models.JSONB {
	raw, err := json.Marshal(v)
	if err != nil {
		return models.JSONB{}
	}
	var out models.JSONB
	if err := json.Unmarshal(raw, &out); err != nil {
		return models.JSONB{}
	}
	return out
}

func decodeJSONB(value models.JSONB, target interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
