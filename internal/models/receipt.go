package models

import (
	"time"
)

// ReceiptSequence holds the transactional counter backing sequential receipt
// numbers for one ledger module. One row per module, incremented under a
// row lock.
type ReceiptSequence struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Module     string    `gorm:"uniqueIndex;not null" json:"module"`
	LastNumber int64     `gorm:"not null;default:0" json:"last_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for ReceiptSequence
func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}

// Ledger module constants. Each module numbers its receipts independently.
const (
	ReceiptModuleTreasury      = "treasury"
	ReceiptModuleExtraordinary = "extraordinary"
	ReceiptModuleDegree        = "degree"
)

// receiptPrefixes maps ledger modules to their 3-letter receipt prefix
var receiptPrefixes = map[string]string{
	ReceiptModuleTreasury:      "TSR",
	ReceiptModuleExtraordinary: "EXT",
	ReceiptModuleDegree:        "GRD",
}

// ReceiptPrefix returns the 3-letter prefix for a ledger module.
// Unknown modules fall back to the treasury prefix.
func ReceiptPrefix(module string) string {
	if p, ok := receiptPrefixes[module]; ok {
		return p
	}
	return receiptPrefixes[ReceiptModuleTreasury]
}

// ValidReceiptModule returns true for one of the three known ledger modules
func ValidReceiptModule(module string) bool {
	_, ok := receiptPrefixes[module]
	return ok
}
