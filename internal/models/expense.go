package models

import (
	"time"
)

// Expense represents an expense paid out of the lodge treasury
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"index" json:"category"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	ExpenseDate time.Time `gorm:"type:date;not null;index" json:"expense_date"`
	VoucherPath *string   `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}

// CategoryOrDefault returns the category, or the uncategorized label when empty
func (e *Expense) CategoryOrDefault() string {
	if e.Category == "" {
		return "Sin categoría"
	}
	return e.Category
}

// ExpenseResponse is the JSON response format for expenses
type ExpenseResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	ExpenseDate time.Time `json:"expense_date"`
	HasVoucher  bool      `json:"has_voucher"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Expense to ExpenseResponse
func (e *Expense) ToResponse() ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.CategoryOrDefault(),
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		HasVoucher:  e.VoucherPath != nil && *e.VoucherPath != "",
		CreatedAt:   e.CreatedAt,
	}
}
