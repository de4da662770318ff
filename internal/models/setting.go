package models

import (
	"time"
)

// Setting holds the lodge-wide configuration edited from the dashboard.
// Single row, created with defaults on first access.
type Setting struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	InstitutionName string  `gorm:"not null" json:"institution_name"`
	LogoURL         *string `json:"logo_url"`
	MonthlyFeeBase  float64 `gorm:"type:decimal(10,2);not null" json:"monthly_fee_base"`

	// Receipt signers
	TreasurerName         string  `json:"treasurer_name"`
	TreasurerTitle        string  `gorm:"default:Tesorero" json:"treasurer_title"`
	TreasurerSignatureURL *string `json:"treasurer_signature_url"`
	VenerableName         string  `json:"venerable_name"`
	VenerableTitle        string  `gorm:"default:Venerable Maestro" json:"venerable_title"`
	VenerableSignatureURL *string `json:"venerable_signature_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
