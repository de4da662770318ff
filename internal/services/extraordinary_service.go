package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/statemachine"
)

// RecordExtraordinaryInput carries a member's payment toward an assessment
type RecordExtraordinaryInput struct {
	FeeID       uint
	MemberID    uint
	AmountPaid  float64
	PaymentDate string // YYYY-MM-DD, today when empty
	SendEmail   bool
}

// ExtraordinaryService manages one-off assessments and their payments.
// Assessment status moves through the state machine as payments arrive.
type ExtraordinaryService struct {
	repo         repository.ExtraordinaryRepository
	memberRepo   repository.MemberRepository
	settingsRepo repository.SettingRepository
	receiptSvc   *ReceiptService
	emailSvc     *EmailService
	notifySvc    *NotificationService
	worker       *jobs.Worker
	defaults     *models.Setting
}

func NewExtraordinaryService(
	repo repository.ExtraordinaryRepository,
	memberRepo repository.MemberRepository,
	settingsRepo repository.SettingRepository,
	receiptSvc *ReceiptService,
	emailSvc *EmailService,
	notifySvc *NotificationService,
	worker *jobs.Worker,
	defaults *models.Setting,
) *ExtraordinaryService {
	return &ExtraordinaryService{
		repo:         repo,
		memberRepo:   memberRepo,
		settingsRepo: settingsRepo,
		receiptSvc:   receiptSvc,
		emailSvc:     emailSvc,
		notifySvc:    notifySvc,
		worker:       worker,
		defaults:     defaults,
	}
}

// CreateFee levies a new assessment in pending state
func (s *ExtraordinaryService) CreateFee(ctx context.Context, fee *models.ExtraordinaryFee) error {
	if fee.Amount <= 0 {
		return ErrInvalidAmount
	}
	fee.Status = models.FeeStatusPending
	return s.repo.CreateFee(ctx, fee)
}

func (s *ExtraordinaryService) FindFee(ctx context.Context, id uint) (*models.ExtraordinaryFee, error) {
	fee, err := s.repo.FindFeeByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return fee, nil
}

func (s *ExtraordinaryService) ListFees(ctx context.Context, query *repository.ListQuery) ([]models.ExtraordinaryFee, int64, error) {
	return s.repo.ListFees(ctx, query)
}

// CancelFee withdraws an assessment that is not yet fully collected
func (s *ExtraordinaryService) CancelFee(ctx context.Context, id uint) (*models.ExtraordinaryFee, error) {
	fee, err := s.repo.FindFeeByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewAssessmentFSM(fee)
	if err := fsm.Cancel(ctx); err != nil {
		return nil, ErrInvalidState
	}

	if err := s.repo.UpdateFee(ctx, fee); err != nil {
		return nil, err
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notifySvc.NotifyAdmins(ctx,
			"Cuota extraordinaria cancelada",
			fmt.Sprintf("Se canceló la cuota: %s", fee.Description),
			models.NotificationTypeFeeCancelled,
		)
	})

	return fee, nil
}

// RecordPayment stores a member's payment toward an assessment and advances
// the assessment state: partial on the first payment, settled once every
// active member has covered the quota.
func (s *ExtraordinaryService) RecordPayment(ctx context.Context, input RecordExtraordinaryInput) (*models.ExtraordinaryPayment, error) {
	if input.AmountPaid <= 0 {
		return nil, ErrInvalidAmount
	}

	fee, err := s.repo.FindFeeByID(ctx, input.FeeID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !fee.MayRecordPayment() {
		return nil, ErrFeeClosed
	}

	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !member.IsActive() {
		return nil, ErrMemberInactive
	}

	paymentDate := time.Now()
	if input.PaymentDate != "" {
		if d, err := time.Parse("2006-01-02", input.PaymentDate); err == nil {
			paymentDate = d
		}
	}

	receiptNumber := s.receiptSvc.NextReceiptNumber(ctx, models.ReceiptModuleExtraordinary)

	payment := &models.ExtraordinaryPayment{
		FeeID:         input.FeeID,
		MemberID:      input.MemberID,
		AmountPaid:    input.AmountPaid,
		PaymentDate:   &paymentDate,
		ReceiptNumber: &receiptNumber,
	}

	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}
	payment.Member = *member
	payment.Fee = *fee

	if err := s.advanceFeeStatus(ctx, fee); err != nil {
		return nil, err
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notifySvc.NotifyAdmins(ctx,
			"Pago registrado",
			fmt.Sprintf("%s pagó $%.2f (%s) - Recibo %s", member.FullName, payment.AmountPaid, fee.Description, receiptNumber),
			models.NotificationTypePaymentRecorded,
		)
	})

	if input.SendEmail {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.emailReceipt(ctx, payment)
		})
	}

	return payment, nil
}

func (s *ExtraordinaryService) FindPayment(ctx context.Context, id uint) (*models.ExtraordinaryPayment, error) {
	payment, err := s.repo.FindPaymentByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// MemberRemaining returns the member's outstanding balance on a fee
func (s *ExtraordinaryService) MemberRemaining(ctx context.Context, feeID, memberID uint) (float64, error) {
	fee, err := s.repo.FindFeeByID(ctx, feeID)
	if err != nil {
		return 0, ErrNotFound
	}

	payments, err := s.repo.FindPaymentsByFeeAndMember(ctx, feeID, memberID)
	if err != nil {
		return 0, err
	}

	paid := 0.0
	for _, p := range payments {
		paid += p.AmountPaid
	}

	remaining := fee.Amount - paid
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// BuildReceipt renders the receipt PDF for an extraordinary payment
func (s *ExtraordinaryService) BuildReceipt(ctx context.Context, paymentID uint) (*bytes.Buffer, string, error) {
	payment, err := s.repo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, "", err
	}

	req, err := s.receiptRequest(ctx, payment, settings)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, req)
	if err != nil {
		return nil, "", err
	}

	return pdf, ReceiptFilename(payment.Member.FullName), nil
}

// WhatsAppMessage builds the confirmation text for an extraordinary payment
func (s *ExtraordinaryService) WhatsAppMessage(ctx context.Context, paymentID uint) (string, error) {
	payment, err := s.repo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return "", ErrNotFound
	}

	remaining, err := s.MemberRemaining(ctx, payment.FeeID, payment.MemberID)
	if err != nil {
		return "", err
	}

	var remainingPtr *float64
	if remaining > 0 {
		remainingPtr = &remaining
	}

	return ReceiptWhatsAppMessage(payment.Member.FullName, payment.Fee.Description, payment.AmountPaid, remainingPtr), nil
}

// advanceFeeStatus recomputes the assessment state after a payment
func (s *ExtraordinaryService) advanceFeeStatus(ctx context.Context, fee *models.ExtraordinaryFee) error {
	active, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return err
	}

	payments, err := s.repo.FindPaymentsByFee(ctx, fee.ID)
	if err != nil {
		return err
	}

	paidByMember := map[uint]float64{}
	for _, p := range payments {
		paidByMember[p.MemberID] += p.AmountPaid
	}

	settled := len(active) > 0
	for _, m := range active {
		if paidByMember[m.ID] < fee.Amount {
			settled = false
			break
		}
	}

	fsm := statemachine.NewAssessmentFSM(fee)
	if settled {
		if err := fsm.Settle(ctx); err != nil {
			return ErrInvalidState
		}
	} else if err := fsm.RecordPartial(ctx); err != nil {
		return ErrInvalidState
	}

	return s.repo.UpdateFee(ctx, fee)
}

func (s *ExtraordinaryService) emailReceipt(ctx context.Context, payment *models.ExtraordinaryPayment) error {
	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return err
	}

	req, err := s.receiptRequest(ctx, payment, settings)
	if err != nil {
		return err
	}

	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, req)
	if err != nil {
		return err
	}

	filename := ReceiptFilename(payment.Member.FullName)
	return s.emailSvc.SendReceipt(ctx, &payment.Member, req.ReceiptNumber, req.Concept, payment.AmountPaid, pdf.Bytes(), filename)
}

func (s *ExtraordinaryService) receiptRequest(ctx context.Context, payment *models.ExtraordinaryPayment, settings *models.Setting) (ReceiptRequest, error) {
	remaining, err := s.MemberRemaining(ctx, payment.FeeID, payment.MemberID)
	if err != nil {
		return ReceiptRequest{}, err
	}

	var remainingPtr *float64
	if remaining > 0 {
		remainingPtr = &remaining
	}

	receiptNumber := ""
	if payment.ReceiptNumber != nil {
		receiptNumber = *payment.ReceiptNumber
	}

	paymentDate := time.Now().Format("2006-01-02")
	if payment.PaymentDate != nil {
		paymentDate = payment.PaymentDate.Format("2006-01-02")
	}

	return ReceiptRequest{
		ReceiptNumber:   receiptNumber,
		MemberName:      payment.Member.FullName,
		MemberDegree:    payment.Member.Degree,
		Concept:         fmt.Sprintf("Cuota extraordinaria: %s", payment.Fee.Description),
		TotalAmount:     payment.Fee.Amount,
		AmountPaid:      payment.AmountPaid,
		PaymentDate:     paymentDate,
		InstitutionName: settings.InstitutionName,
		LogoURL:         strValue(settings.LogoURL),
		Remaining:       remainingPtr,
		Treasurer:       treasurerSigner(settings),
		VenerableMaster: venerableSigner(settings),
	}, nil
}
