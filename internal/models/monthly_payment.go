package models

import (
	"time"
)

// MonthlyPayment represents a member's monthly dues payment.
// Month/Year are calendar values; the fiscal year (July-June) grouping is
// derived at query time.
type MonthlyPayment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MemberID      uint       `gorm:"not null;index:idx_monthly_member_period" json:"member_id"`
	Month         int        `gorm:"not null;index:idx_monthly_member_period" json:"month"`
	Year          int        `gorm:"not null;index:idx_monthly_member_period" json:"year"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentType   string     `gorm:"default:regular;not null" json:"payment_type"`
	PaymentDate   *time.Time `gorm:"type:date" json:"payment_date"`
	ReceiptNumber *string    `gorm:"index" json:"receipt_number"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for MonthlyPayment
func (MonthlyPayment) TableName() string {
	return "monthly_payments"
}

// Payment type constants. A pronto_pago_benefit row marks a month granted
// for early payment of the full year; it carries no cash and is excluded
// from income totals.
const (
	PaymentTypeRegular           = "regular"
	PaymentTypeProntoPagoBenefit = "pronto_pago_benefit"
)

// CountsAsIncome returns true when the payment represents real cash received
func (p *MonthlyPayment) CountsAsIncome() bool {
	return p.PaymentType != PaymentTypeProntoPagoBenefit
}

// CoversFee returns true when the payment fully covers the base monthly fee.
// Benefit months always count as covered.
func (p *MonthlyPayment) CoversFee(monthlyFeeBase float64) bool {
	if p.PaymentType == PaymentTypeProntoPagoBenefit {
		return true
	}
	return p.Amount >= monthlyFeeBase
}

// MonthlyPaymentResponse is the JSON response format for monthly payments
type MonthlyPaymentResponse struct {
	ID            uint       `json:"id"`
	MemberID      uint       `json:"member_id"`
	MemberName    string     `json:"member_name,omitempty"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	Amount        float64    `json:"amount"`
	PaymentType   string     `json:"payment_type"`
	PaymentDate   *time.Time `json:"payment_date"`
	ReceiptNumber *string    `json:"receipt_number"`
	Notes         *string    `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts MonthlyPayment to MonthlyPaymentResponse
func (p *MonthlyPayment) ToResponse() MonthlyPaymentResponse {
	resp := MonthlyPaymentResponse{
		ID:            p.ID,
		MemberID:      p.MemberID,
		Month:         p.Month,
		Year:          p.Year,
		Amount:        p.Amount,
		PaymentType:   p.PaymentType,
		PaymentDate:   p.PaymentDate,
		ReceiptNumber: p.ReceiptNumber,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
	if p.Member.ID != 0 {
		resp.MemberName = p.Member.FullName
	}
	return resp
}
