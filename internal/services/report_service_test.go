package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Mock MemberRepository (using embedding to avoid implementing all methods)
type mockMemberRepository struct {
	repository.MemberRepository
	mockFindActive func(ctx context.Context) ([]models.Member, error)
}

func (m *mockMemberRepository) FindActive(ctx context.Context) ([]models.Member, error) {
	if m.mockFindActive != nil {
		return m.mockFindActive(ctx)
	}
	return nil, nil
}

// Mock MonthlyPaymentRepository
type mockMonthlyPaymentRepository struct {
	repository.MonthlyPaymentRepository
	mockFindByMember func(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error)
	mockFindAll      func(ctx context.Context) ([]models.MonthlyPayment, error)
}

func (m *mockMonthlyPaymentRepository) FindByMember(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
	if m.mockFindByMember != nil {
		return m.mockFindByMember(ctx, memberID)
	}
	return nil, nil
}

func (m *mockMonthlyPaymentRepository) FindAll(ctx context.Context) ([]models.MonthlyPayment, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

// Mock SettingRepository
type mockSettingRepository struct {
	repository.SettingRepository
	mockGet func(ctx context.Context, defaults *models.Setting) (*models.Setting, error)
}

func (m *mockSettingRepository) Get(ctx context.Context, defaults *models.Setting) (*models.Setting, error) {
	if m.mockGet != nil {
		return m.mockGet(ctx, defaults)
	}
	return defaults, nil
}

// Mock ExpenseRepository
type mockExpenseRepository struct {
	repository.ExpenseRepository
	mockFindAll func(ctx context.Context) ([]models.Expense, error)
}

func (m *mockExpenseRepository) FindAll(ctx context.Context) ([]models.Expense, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

func TestArrearsEntries(t *testing.T) {
	fy := CurrentFiscalYear(time.Now())

	memberRepo := &mockMemberRepository{
		mockFindActive: func(ctx context.Context) ([]models.Member, error) {
			return []models.Member{
				{ID: 1, FullName: "Juan Pérez", Degree: models.DegreeMaster, Phone: "0991234567"},
				{ID: 2, FullName: "Carlos Andrade", Degree: models.DegreeApprentice},
			}, nil
		},
	}

	// Member 1 covered every fiscal month, member 2 only covered July
	monthlyRepo := &mockMonthlyPaymentRepository{
		mockFindByMember: func(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
			if memberID == 2 {
				return []models.MonthlyPayment{
					{MemberID: 2, Month: 7, Year: fy.StartYear, Amount: 50, PaymentType: models.PaymentTypeRegular},
				}, nil
			}
			var payments []models.MonthlyPayment
			for _, fm := range fy.Months() {
				payments = append(payments, models.MonthlyPayment{
					MemberID: 1, Month: fm.Month, Year: fm.Year, Amount: 50,
					PaymentType: models.PaymentTypeRegular,
				})
			}
			return payments, nil
		},
	}

	settingsRepo := &mockSettingRepository{
		mockGet: func(ctx context.Context, defaults *models.Setting) (*models.Setting, error) {
			return &models.Setting{MonthlyFeeBase: 50}, nil
		},
	}

	service := NewReportService(memberRepo, monthlyRepo, nil, nil, nil, settingsRepo, &models.Setting{})

	entries, err := service.ArrearsEntries(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint(2), entries[0].MemberID)
	assert.Equal(t, "Carlos Andrade", entries[0].MemberName)
	assert.Equal(t, "Aprendiz", entries[0].Degree)
	assert.Equal(t, 11, entries[0].PendingMonths)
}

func TestArrearsEntries_BenefitMonthsCountAsCovered(t *testing.T) {
	fy := CurrentFiscalYear(time.Now())

	memberRepo := &mockMemberRepository{
		mockFindActive: func(ctx context.Context) ([]models.Member, error) {
			return []models.Member{{ID: 1, FullName: "Pedro Mena"}}, nil
		},
	}

	// Benefit rows carry no cash but still cover the month
	monthlyRepo := &mockMonthlyPaymentRepository{
		mockFindByMember: func(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
			var payments []models.MonthlyPayment
			for _, fm := range fy.Months() {
				payments = append(payments, models.MonthlyPayment{
					MemberID: 1, Month: fm.Month, Year: fm.Year, Amount: 0,
					PaymentType: models.PaymentTypeProntoPagoBenefit,
				})
			}
			return payments, nil
		},
	}

	service := NewReportService(memberRepo, monthlyRepo, nil, nil, nil,
		&mockSettingRepository{}, &models.Setting{MonthlyFeeBase: 50})

	entries, err := service.ArrearsEntries(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArrearsEntries_PartialPaymentDoesNotCover(t *testing.T) {
	fy := CurrentFiscalYear(time.Now())

	memberRepo := &mockMemberRepository{
		mockFindActive: func(ctx context.Context) ([]models.Member, error) {
			return []models.Member{{ID: 1, FullName: "Luis Vélez"}}, nil
		},
	}

	monthlyRepo := &mockMonthlyPaymentRepository{
		mockFindByMember: func(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
			return []models.MonthlyPayment{
				{MemberID: 1, Month: 7, Year: fy.StartYear, Amount: 20, PaymentType: models.PaymentTypeRegular},
			}, nil
		},
	}

	service := NewReportService(memberRepo, monthlyRepo, nil, nil, nil,
		&mockSettingRepository{}, &models.Setting{MonthlyFeeBase: 50})

	entries, err := service.ArrearsEntries(context.Background())
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 12, entries[0].PendingMonths)
}

func TestGenerateDuesCSV(t *testing.T) {
	fy := CurrentFiscalYear(time.Now())
	payDate := time.Date(fy.StartYear, 8, 5, 0, 0, 0, 0, time.UTC)
	receipt := "TSR-000001"

	monthlyRepo := &mockMonthlyPaymentRepository{
		mockFindAll: func(ctx context.Context) ([]models.MonthlyPayment, error) {
			return []models.MonthlyPayment{
				{
					ID: 1, Month: 8, Year: fy.StartYear, Amount: 50,
					PaymentType: models.PaymentTypeRegular,
					PaymentDate: &payDate, ReceiptNumber: &receipt,
					Member: models.Member{ID: 3, FullName: "Juan Pérez", Degree: models.DegreeMaster},
				},
				// Previous fiscal year, must be excluded
				{
					ID: 2, Month: 8, Year: fy.StartYear - 1, Amount: 50,
					PaymentType: models.PaymentTypeRegular,
					Member:      models.Member{ID: 3, FullName: "Juan Pérez"},
				},
				{
					ID: 3, Month: 9, Year: fy.StartYear, Amount: 0,
					PaymentType: models.PaymentTypeProntoPagoBenefit,
					Member:      models.Member{ID: 3, FullName: "Juan Pérez", Degree: models.DegreeMaster},
				},
			}, nil
		},
	}

	service := NewReportService(nil, monthlyRepo, nil, nil, nil, &mockSettingRepository{}, &models.Setting{})

	buf, err := service.GenerateDuesCSV(context.Background())
	assert.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3, "header plus the two current-year rows")
	assert.Contains(t, lines[0], "Miembro")
	assert.Contains(t, out, "Juan Pérez")
	assert.Contains(t, out, "TSR-000001")
	assert.Contains(t, out, "Beneficio pronto pago")
	assert.NotContains(t, out, ",2,")
}

func TestGenerateExpensesCSV(t *testing.T) {
	expenseRepo := &mockExpenseRepository{
		mockFindAll: func(ctx context.Context) ([]models.Expense, error) {
			return []models.Expense{
				{ID: 1, Description: "Alquiler del templo", Category: "alquiler", Amount: 300,
					ExpenseDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	service := NewReportService(nil, nil, nil, nil, expenseRepo, &mockSettingRepository{}, &models.Setting{})

	buf, err := service.GenerateExpensesCSV(context.Background())
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alquiler del templo")
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, "2026-02-10")
}
