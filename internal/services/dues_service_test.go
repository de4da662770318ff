package services

import (
	"context"
	"testing"

	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

// Mock NotificationRepository
type mockNotificationRepo struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

// mockMemberRepoWithFind extends the shared member mock with FindByID
type mockMemberRepoWithFind struct {
	mockMemberRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Member, error)
}

func (m *mockMemberRepoWithFind) FindByID(ctx context.Context, id uint) (*models.Member, error) {
	return m.mockFindByID(ctx, id)
}

// mockMonthlyRepoForDues extends the shared monthly mock with the write path
type mockMonthlyRepoForDues struct {
	mockMonthlyPaymentRepository
	mockFindByMemberAndPeriod func(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error)
	mockCreate                func(ctx context.Context, payment *models.MonthlyPayment) error
}

func (m *mockMonthlyRepoForDues) FindByMemberAndPeriod(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error) {
	if m.mockFindByMemberAndPeriod != nil {
		return m.mockFindByMemberAndPeriod(ctx, memberID, month, year)
	}
	return nil, ErrNotFound
}

func (m *mockMonthlyRepoForDues) Create(ctx context.Context, payment *models.MonthlyPayment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	return nil
}

func newDuesServiceForTest(repo *mockMonthlyRepoForDues, memberRepo *mockMemberRepoWithFind, worker *jobs.Worker) *DuesService {
	receiptSvc := newTestReceiptService(&mockSequenceRepository{
		mockNext: func(ctx context.Context, module string) (int64, error) { return 42, nil },
	})
	notifySvc := NewNotificationService(&mockNotificationRepo{}, &mockUserRepo{})
	defaults := &models.Setting{InstitutionName: "Logia de prueba", MonthlyFeeBase: 50}

	return NewDuesService(repo, memberRepo, &mockSettingRepository{}, receiptSvc, nil, notifySvc, worker, nil, defaults)
}

func activeMemberRepo() *mockMemberRepoWithFind {
	return &mockMemberRepoWithFind{
		mockFindByID: func(ctx context.Context, id uint) (*models.Member, error) {
			return &models.Member{ID: id, FullName: "Juan Pérez", Status: models.MemberStatusActive}, nil
		},
	}
}

func TestRecordPayment(t *testing.T) {
	worker := jobs.NewWorker(0)
	defer worker.Shutdown()

	var created *models.MonthlyPayment
	repo := &mockMonthlyRepoForDues{
		mockCreate: func(ctx context.Context, payment *models.MonthlyPayment) error {
			created = payment
			return nil
		},
	}

	service := newDuesServiceForTest(repo, activeMemberRepo(), worker)

	payment, err := service.RecordPayment(context.Background(), RecordDuesInput{
		MemberID: 1, Month: 8, Year: 2026, Amount: 50,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.PaymentTypeRegular, payment.PaymentType)
	assert.NotNil(t, payment.ReceiptNumber)
	assert.Equal(t, "TSR-000042", *payment.ReceiptNumber)
	assert.NotNil(t, payment.PaymentDate)
}

func TestRecordPayment_RejectsDuplicatePeriod(t *testing.T) {
	worker := jobs.NewWorker(0)
	defer worker.Shutdown()

	repo := &mockMonthlyRepoForDues{
		mockFindByMemberAndPeriod: func(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error) {
			return &models.MonthlyPayment{ID: 9, MemberID: memberID, Month: month, Year: year}, nil
		},
	}

	service := newDuesServiceForTest(repo, activeMemberRepo(), worker)

	_, err := service.RecordPayment(context.Background(), RecordDuesInput{
		MemberID: 1, Month: 8, Year: 2026, Amount: 50,
	})
	assert.ErrorIs(t, err, ErrDuplicatePeriod)
}

func TestRecordPayment_RejectsInactiveMember(t *testing.T) {
	worker := jobs.NewWorker(0)
	defer worker.Shutdown()

	memberRepo := &mockMemberRepoWithFind{
		mockFindByID: func(ctx context.Context, id uint) (*models.Member, error) {
			return &models.Member{ID: id, Status: models.MemberStatusInactive}, nil
		},
	}

	service := newDuesServiceForTest(&mockMonthlyRepoForDues{}, memberRepo, worker)

	_, err := service.RecordPayment(context.Background(), RecordDuesInput{
		MemberID: 1, Month: 8, Year: 2026, Amount: 50,
	})
	assert.ErrorIs(t, err, ErrMemberInactive)
}

func TestRecordPayment_RejectsInvalidMonth(t *testing.T) {
	worker := jobs.NewWorker(0)
	defer worker.Shutdown()

	service := newDuesServiceForTest(&mockMonthlyRepoForDues{}, activeMemberRepo(), worker)

	_, err := service.RecordPayment(context.Background(), RecordDuesInput{
		MemberID: 1, Month: 13, Year: 2026, Amount: 50,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestGrantProntoPagoBenefit(t *testing.T) {
	worker := jobs.NewWorker(0)
	defer worker.Shutdown()

	var created *models.MonthlyPayment
	repo := &mockMonthlyRepoForDues{
		mockCreate: func(ctx context.Context, payment *models.MonthlyPayment) error {
			created = payment
			return nil
		},
	}

	service := newDuesServiceForTest(repo, activeMemberRepo(), worker)

	payment, err := service.GrantProntoPagoBenefit(context.Background(), 1, 6, 2027)
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.PaymentTypeProntoPagoBenefit, payment.PaymentType)
	assert.Equal(t, 0.0, payment.Amount)
	assert.False(t, payment.CountsAsIncome())
}

func TestDuesConcept(t *testing.T) {
	regular := &models.MonthlyPayment{Month: 1, Year: 2026, PaymentType: models.PaymentTypeRegular}
	assert.Equal(t, "Cuota mensual Enero 2026", duesConcept(regular))

	benefit := &models.MonthlyPayment{Month: 6, Year: 2026, PaymentType: models.PaymentTypeProntoPagoBenefit}
	assert.Equal(t, "Beneficio pronto pago - Cuota mensual Junio 2026", duesConcept(benefit))
}

func TestDuesRemaining(t *testing.T) {
	full := &models.MonthlyPayment{Amount: 50, PaymentType: models.PaymentTypeRegular}
	assert.Nil(t, duesRemaining(full, 50))

	partial := &models.MonthlyPayment{Amount: 30, PaymentType: models.PaymentTypeRegular}
	r := duesRemaining(partial, 50)
	assert.NotNil(t, r)
	assert.Equal(t, 20.0, *r)

	benefit := &models.MonthlyPayment{Amount: 0, PaymentType: models.PaymentTypeProntoPagoBenefit}
	assert.Nil(t, duesRemaining(benefit, 50))
}
