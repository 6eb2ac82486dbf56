// internal/models/settings.go
package models

import (
	"github.com/google/uuid"
)

// AppSetting is a category/key row holding one piece of store configuration
// (shipping rules, store contact, payment and mail toggles) as JSONB.
type AppSetting struct {
	BaseModel
	Category    string    `json:"category" gorm:"size:50;not null;uniqueIndex:idx_app_settings_category_key"`
	Key         string    `json:"key" gorm:"size:100;not null;uniqueIndex:idx_app_settings_category_key"`
	Value       JSONB     `json:"value" gorm:"type:jsonb;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UpdatedBy   uuid.UUID `json:"updated_by" gorm:"type:uuid"`
}

// FAQEntry is part of the storefront support configuration.
type FAQEntry struct {
	BaseModel
	Question string `json:"question" gorm:"type:text;not null"`
	Answer   string `json:"answer" gorm:"type:text;not null"`
	Position int    `json:"position" gorm:"default:0;index"`
}
