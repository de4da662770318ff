package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
)

// RecordDegreeFeeInput carries a degree rights payment
type RecordDegreeFeeInput struct {
	MemberID    uint
	Degree      string
	Amount      float64
	PaymentDate string // YYYY-MM-DD, today when empty
	SendEmail   bool
}

// DegreeService records degree rights payments (initiation, passing, raising)
type DegreeService struct {
	repo         repository.DegreeFeeRepository
	memberRepo   repository.MemberRepository
	settingsRepo repository.SettingRepository
	receiptSvc   *ReceiptService
	emailSvc     *EmailService
	worker       *jobs.Worker
	defaults     *models.Setting
}

func NewDegreeService(
	repo repository.DegreeFeeRepository,
	memberRepo repository.MemberRepository,
	settingsRepo repository.SettingRepository,
	receiptSvc *ReceiptService,
	emailSvc *EmailService,
	worker *jobs.Worker,
	defaults *models.Setting,
) *DegreeService {
	return &DegreeService{
		repo:         repo,
		memberRepo:   memberRepo,
		settingsRepo: settingsRepo,
		receiptSvc:   receiptSvc,
		emailSvc:     emailSvc,
		worker:       worker,
		defaults:     defaults,
	}
}

func (s *DegreeService) FindByID(ctx context.Context, id uint) (*models.DegreeFee, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return fee, nil
}

func (s *DegreeService) List(ctx context.Context, query *repository.ListQuery) ([]models.DegreeFee, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *DegreeService) FindByMember(ctx context.Context, memberID uint) ([]models.DegreeFee, error) {
	return s.repo.FindByMember(ctx, memberID)
}

// RecordPayment stores a degree rights payment and assigns its receipt number
func (s *DegreeService) RecordPayment(ctx context.Context, input RecordDegreeFeeInput) (*models.DegreeFee, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
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

	receiptNumber := s.receiptSvc.NextReceiptNumber(ctx, models.ReceiptModuleDegree)

	fee := &models.DegreeFee{
		MemberID:      input.MemberID,
		Degree:        input.Degree,
		Amount:        input.Amount,
		PaymentDate:   &paymentDate,
		ReceiptNumber: &receiptNumber,
	}

	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, err
	}
	fee.Member = *member

	if input.SendEmail {
		s.worker.EnqueueAsync(func(ctx context.Context) error {
			return s.emailReceipt(ctx, fee)
		})
	}

	return fee, nil
}

func (s *DegreeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// BuildReceipt renders the receipt PDF for a degree rights payment
func (s *DegreeService) BuildReceipt(ctx context.Context, feeID uint) (*bytes.Buffer, string, error) {
	fee, err := s.repo.FindByID(ctx, feeID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, s.receiptRequest(fee, settings))
	if err != nil {
		return nil, "", err
	}

	return pdf, ReceiptFilename(fee.Member.FullName), nil
}

// WhatsAppMessage builds the confirmation text for a degree rights payment
func (s *DegreeService) WhatsAppMessage(ctx context.Context, feeID uint) (string, error) {
	fee, err := s.repo.FindByID(ctx, feeID)
	if err != nil {
		return "", ErrNotFound
	}
	return ReceiptWhatsAppMessage(fee.Member.FullName, degreeConcept(fee), fee.Amount, nil), nil
}

func (s *DegreeService) emailReceipt(ctx context.Context, fee *models.DegreeFee) error {
	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return err
	}

	req := s.receiptRequest(fee, settings)
	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, req)
	if err != nil {
		return err
	}

	filename := ReceiptFilename(fee.Member.FullName)
	return s.emailSvc.SendReceipt(ctx, &fee.Member, req.ReceiptNumber, req.Concept, fee.Amount, pdf.Bytes(), filename)
}

func (s *DegreeService) receiptRequest(fee *models.DegreeFee, settings *models.Setting) ReceiptRequest {
	receiptNumber := ""
	if fee.ReceiptNumber != nil {
		receiptNumber = *fee.ReceiptNumber
	}

	paymentDate := time.Now().Format("2006-01-02")
	if fee.PaymentDate != nil {
		paymentDate = fee.PaymentDate.Format("2006-01-02")
	}

	return ReceiptRequest{
		ReceiptNumber:   receiptNumber,
		MemberName:      fee.Member.FullName,
		MemberDegree:    fee.Member.Degree,
		Concept:         degreeConcept(fee),
		TotalAmount:     fee.Amount,
		AmountPaid:      fee.Amount,
		PaymentDate:     paymentDate,
		InstitutionName: settings.InstitutionName,
		LogoURL:         strValue(settings.LogoURL),
		Treasurer:       treasurerSigner(settings),
		VenerableMaster: venerableSigner(settings),
	}
}

func degreeConcept(fee *models.DegreeFee) string {
	return fmt.Sprintf("Derechos de grado: %s", models.DegreeLabel(fee.Degree))
}
