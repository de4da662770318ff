package models

import (
	"time"
)

// DegreeFee represents the fee paid by a member for a degree ceremony
type DegreeFee struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	MemberID      uint       `gorm:"not null;index" json:"member_id"`
	Degree        string     `gorm:"not null" json:"degree"`
	Amount        float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   *time.Time `gorm:"type:date" json:"payment_date"`
	ReceiptNumber *string    `gorm:"index" json:"receipt_number"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// TableName specifies the table name for DegreeFee
func (DegreeFee) TableName() string {
	return "degree_fees"
}

// DegreeFeeResponse is the JSON response format for degree fees
type DegreeFeeResponse struct {
	ID            uint       `json:"id"`
	MemberID      uint       `json:"member_id"`
	MemberName    string     `json:"member_name,omitempty"`
	Degree        string     `json:"degree"`
	DegreeLabel   string     `json:"degree_label"`
	Amount        float64    `json:"amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	ReceiptNumber *string    `json:"receipt_number"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToResponse converts DegreeFee to DegreeFeeResponse
func (f *DegreeFee) ToResponse() DegreeFeeResponse {
	resp := DegreeFeeResponse{
		ID:            f.ID,
		MemberID:      f.MemberID,
		Degree:        f.Degree,
		DegreeLabel:   DegreeLabel(f.Degree),
		Amount:        f.Amount,
		PaymentDate:   f.PaymentDate,
		ReceiptNumber: f.ReceiptNumber,
		CreatedAt:     f.CreatedAt,
	}
	if f.Member.ID != 0 {
		resp.MemberName = f.Member.FullName
	}
	return resp
}
