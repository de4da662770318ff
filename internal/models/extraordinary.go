package models

import (
	"time"
)

// ExtraordinaryFee represents a one-off assessment levied on all active
// members (e.g. a building repair quota). Its status follows the assessment
// state machine in internal/statemachine.
type ExtraordinaryFee struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Description string     `gorm:"not null" json:"description"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date"`
	Status      string     `gorm:"default:pendiente;not null;index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Payments []ExtraordinaryPayment `gorm:"foreignKey:FeeID" json:"payments,omitempty"`
}

// TableName specifies the table name for ExtraordinaryFee
func (ExtraordinaryFee) TableName() string {
	return "extraordinary_fees"
}

// Assessment status constants
const (
	FeeStatusPending   = "pendiente"
	FeeStatusPartial   = "parcial"
	FeeStatusPaid      = "pagada"
	FeeStatusCancelled = "cancelada"
)

// MayRecordPayment returns true if payments can still be recorded
func (f *ExtraordinaryFee) MayRecordPayment() bool {
	return f.Status == FeeStatusPending || f.Status == FeeStatusPartial
}

// MayCancel returns true if the assessment can be cancelled
func (f *ExtraordinaryFee) MayCancel() bool {
	return f.Status != FeeStatusPaid && f.Status != FeeStatusCancelled
}

// ExtraordinaryPayment represents a member's payment toward an assessment.
// Partial payments are allowed; RemainingFor on the fee side reports the
// member's outstanding balance.
type ExtraordinaryPayment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	FeeID         uint       `gorm:"not null;index:idx_extra_fee_member" json:"extraordinary_fee_id"`
	MemberID      uint       `gorm:"not null;index:idx_extra_fee_member" json:"member_id"`
	AmountPaid    float64    `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	PaymentDate   *time.Time `gorm:"type:date" json:"payment_date"`
	ReceiptNumber *string    `gorm:"index" json:"receipt_number"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Fee    ExtraordinaryFee `gorm:"foreignKey:FeeID" json:"fee,omitempty"`
	Member Member           `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for ExtraordinaryPayment
func (ExtraordinaryPayment) TableName() string {
	return "extraordinary_payments"
}

// ExtraordinaryPaymentResponse is the JSON response format
type ExtraordinaryPaymentResponse struct {
	ID            uint       `json:"id"`
	FeeID         uint       `json:"extraordinary_fee_id"`
	MemberID      uint       `json:"member_id"`
	MemberName    string     `json:"member_name,omitempty"`
	Concept       string     `json:"concept,omitempty"`
	AmountPaid    float64    `json:"amount_paid"`
	PaymentDate   *time.Time `json:"payment_date"`
	ReceiptNumber *string    `json:"receipt_number"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts ExtraordinaryPayment to its response format
func (p *ExtraordinaryPayment) ToResponse() ExtraordinaryPaymentResponse {
	resp := ExtraordinaryPaymentResponse{
		ID:            p.ID,
		FeeID:         p.FeeID,
		MemberID:      p.MemberID,
		AmountPaid:    p.AmountPaid,
		PaymentDate:   p.PaymentDate,
		ReceiptNumber: p.ReceiptNumber,
		CreatedAt:     p.CreatedAt,
	}
	if p.Member.ID != 0 {
		resp.MemberName = p.Member.FullName
	}
	if p.Fee.ID != 0 {
		resp.Concept = p.Fee.Description
	}
	return resp
}
