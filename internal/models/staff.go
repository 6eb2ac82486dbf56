// internal/models/staff.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// StaffUser authenticates against the admin back office.
type StaffUser struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         StaffRole  `json:"role" gorm:"type:varchar(20);default:'staff'"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (u *StaffUser) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *StaffUser) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// AuditLog records every mutating request against the API.
type AuditLog struct {
	BaseModel
	StaffID      *string `json:"staff_id" gorm:"size:64;index"`
	Action       string  `json:"action" gorm:"size:100;not null;index"`
	ResourceType string  `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string  `json:"resource_id,omitempty" gorm:"size:64;index"`
	NewValues    JSONB   `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string  `json:"ip_address" gorm:"size:45"`
	UserAgent    string  `json:"user_agent" gorm:"type:text"`
}
