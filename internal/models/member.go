package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Member represents a lodge member
type Member struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FullName    string     `gorm:"not null" json:"full_name"`
	Degree      string     `gorm:"default:aprendiz;index" json:"degree"`
	Status      string     `gorm:"default:activo;not null;index" json:"status"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date"`
	InitiatedAt *time.Time `gorm:"type:date" json:"initiated_at"`
	PhotoPath   *string    `json:"-"`
	ThumbPath   *string    `json:"-"`
	Note        *string    `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	MonthlyPayments []MonthlyPayment `gorm:"foreignKey:MemberID" json:"monthly_payments,omitempty"`
	DegreeFees      []DegreeFee      `gorm:"foreignKey:MemberID" json:"degree_fees,omitempty"`
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}

// BeforeCreate hook for setting defaults
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.Degree == "" {
		m.Degree = DegreeApprentice
	}
	if m.Status == "" {
		m.Status = MemberStatusActive
	}
	return nil
}

// Degree constants
const (
	DegreeApprentice = "aprendiz"
	DegreeCompanion  = "companero"
	DegreeMaster     = "maestro"
)

// Member status constants
const (
	MemberStatusActive   = "activo"
	MemberStatusInactive = "inactivo"
)

// degreeLabels maps degree values to their display form
var degreeLabels = map[string]string{
	DegreeApprentice: "Aprendiz",
	DegreeCompanion:  "Compañero",
	DegreeMaster:     "Maestro",
}

// DegreeLabel returns the display label for a degree value.
// Unrecognized values are returned as-is.
func DegreeLabel(degree string) string {
	if label, ok := degreeLabels[degree]; ok {
		return label
	}
	return degree
}

// IsActive returns true if the member is active
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// FirstName returns the first whitespace-separated token of the full name
func (m *Member) FirstName() string {
	parts := strings.Fields(m.FullName)
	if len(parts) == 0 {
		return m.FullName
	}
	return parts[0]
}

// IsBirthdayToday returns true if the member's birthday falls on the given day
func (m *Member) IsBirthdayToday(now time.Time) bool {
	if m.BirthDate == nil {
		return false
	}
	return m.BirthDate.Month() == now.Month() && m.BirthDate.Day() == now.Day()
}

// MemberResponse is the JSON response format for members
type MemberResponse struct {
	ID          uint       `json:"id"`
	FullName    string     `json:"full_name"`
	Degree      string     `json:"degree"`
	DegreeLabel string     `json:"degree_label"`
	Status      string     `json:"status"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	BirthDate   *time.Time `json:"birth_date"`
	InitiatedAt *time.Time `json:"initiated_at"`
	HasPhoto    bool       `json:"has_photo"`
	Note        *string    `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToResponse converts Member to MemberResponse
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		FullName:    m.FullName,
		Degree:      m.Degree,
		DegreeLabel: DegreeLabel(m.Degree),
		Status:      m.Status,
		Phone:       m.Phone,
		Email:       m.Email,
		BirthDate:   m.BirthDate,
		InitiatedAt: m.InitiatedAt,
		HasPhoto:    m.PhotoPath != nil && *m.PhotoPath != "",
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
