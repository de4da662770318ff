package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jvintimilla/logia-api/internal/jobs"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/storage"
	"github.com/jvintimilla/logia-api/pkg/logger"
)

// monthNames for receipt concepts, index 1-12
var monthNames = []string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// RecordDuesInput carries a new monthly dues payment
type RecordDuesInput struct {
	MemberID    uint
	Month       int
	Year        int
	Amount      float64
	PaymentType string
	PaymentDate string // YYYY-MM-DD, today when empty
	Notes       *string
	SendEmail   bool
}

// DuesService records monthly dues payments and issues their receipts
type DuesService struct {
	repo         repository.MonthlyPaymentRepository
	memberRepo   repository.MemberRepository
	settingsRepo repository.SettingRepository
	receiptSvc   *ReceiptService
	emailSvc     *EmailService
	notifySvc    *NotificationService
	worker       *jobs.Worker
	store        *storage.LocalStorage
	defaults     *models.Setting
}

func NewDuesService(
	repo repository.MonthlyPaymentRepository,
	memberRepo repository.MemberRepository,
	settingsRepo repository.SettingRepository,
	receiptSvc *ReceiptService,
	emailSvc *EmailService,
	notifySvc *NotificationService,
	worker *jobs.Worker,
	store *storage.LocalStorage,
	defaults *models.Setting,
) *DuesService {
	return &DuesService{
		repo:         repo,
		memberRepo:   memberRepo,
		settingsRepo: settingsRepo,
		receiptSvc:   receiptSvc,
		emailSvc:     emailSvc,
		notifySvc:    notifySvc,
		worker:       worker,
		store:        store,
		defaults:     defaults,
	}
}

func (s *DuesService) FindByID(ctx context.Context, id uint) (*models.MonthlyPayment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

func (s *DuesService) List(ctx context.Context, query *repository.ListQuery) ([]models.MonthlyPayment, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *DuesService) FindByMember(ctx context.Context, memberID uint) ([]models.MonthlyPayment, error) {
	return s.repo.FindByMember(ctx, memberID)
}

// RecordPayment validates and stores a dues payment, assigns its receipt
// number, and optionally emails the receipt PDF to the member.
func (s *DuesService) RecordPayment(ctx context.Context, input RecordDuesInput) (*models.MonthlyPayment, error) {
	if input.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	if input.Month < 1 || input.Month > 12 {
		return nil, ErrInvalidAmount
	}

	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !member.IsActive() {
		return nil, ErrMemberInactive
	}

	if existing, err := s.repo.FindByMemberAndPeriod(ctx, input.MemberID, input.Month, input.Year); err == nil && existing != nil {
		return nil, ErrDuplicatePeriod
	}

	paymentType := input.PaymentType
	if paymentType == "" {
		paymentType = models.PaymentTypeRegular
	}

	paymentDate := time.Now()
	if input.PaymentDate != "" {
		if d, err := time.Parse("2006-01-02", input.PaymentDate); err == nil {
			paymentDate = d
		}
	}

	receiptNumber := s.receiptSvc.NextReceiptNumber(ctx, models.ReceiptModuleTreasury)

	payment := &models.MonthlyPayment{
		MemberID:      input.MemberID,
		Month:         input.Month,
		Year:          input.Year,
		Amount:        input.Amount,
		PaymentType:   paymentType,
		PaymentDate:   &paymentDate,
		ReceiptNumber: &receiptNumber,
		Notes:         input.Notes,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}
	payment.Member = *member

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notifySvc.NotifyAdmins(ctx,
			"Pago registrado",
			fmt.Sprintf("%s pagó $%.2f (%s %d) - Recibo %s", member.FullName, payment.Amount, monthNames[payment.Month], payment.Year, receiptNumber),
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

// GrantProntoPagoBenefit records a free month awarded for early payment of
// the full year. The row carries no cash and is excluded from income.
func (s *DuesService) GrantProntoPagoBenefit(ctx context.Context, memberID uint, month, year int) (*models.MonthlyPayment, error) {
	return s.RecordPayment(ctx, RecordDuesInput{
		MemberID:    memberID,
		Month:       month,
		Year:        year,
		Amount:      0,
		PaymentType: models.PaymentTypeProntoPagoBenefit,
	})
}

func (s *DuesService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// BuildReceipt renders the receipt PDF for a recorded dues payment
func (s *DuesService) BuildReceipt(ctx context.Context, paymentID uint) (*bytes.Buffer, string, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, "", err
	}

	req := s.receiptRequest(payment, settings)
	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, req)
	if err != nil {
		return nil, "", err
	}

	return pdf, ReceiptFilename(payment.Member.FullName), nil
}

// WhatsAppMessage builds the confirmation text for a recorded payment
func (s *DuesService) WhatsAppMessage(ctx context.Context, paymentID uint) (string, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		return "", ErrNotFound
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return "", err
	}

	remaining := duesRemaining(payment, settings.MonthlyFeeBase)
	concept := duesConcept(payment)
	return ReceiptWhatsAppMessage(payment.Member.FullName, concept, payment.Amount, remaining), nil
}

func (s *DuesService) emailReceipt(ctx context.Context, payment *models.MonthlyPayment) error {
	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return err
	}

	req := s.receiptRequest(payment, settings)
	pdf, err := s.receiptSvc.GeneratePaymentReceipt(ctx, req)
	if err != nil {
		return err
	}

	filename := ReceiptFilename(payment.Member.FullName)

	// Keep an archive copy; failure is not fatal to the email
	if _, err := s.store.UploadNamed(pdf.Bytes(), filename, storage.DirReceipts); err != nil {
		logger.Warn(fmt.Sprintf("[Dues] Could not archive receipt %s: %v", req.ReceiptNumber, err))
	}

	return s.emailSvc.SendReceipt(ctx, &payment.Member, req.ReceiptNumber, req.Concept, payment.Amount, pdf.Bytes(), filename)
}

func (s *DuesService) receiptRequest(payment *models.MonthlyPayment, settings *models.Setting) ReceiptRequest {
	receiptNumber := ""
	if payment.ReceiptNumber != nil {
		receiptNumber = *payment.ReceiptNumber
	}

	paymentDate := time.Now().Format("2006-01-02")
	if payment.PaymentDate != nil {
		paymentDate = payment.PaymentDate.Format("2006-01-02")
	}

	var details []string
	if payment.Notes != nil && *payment.Notes != "" {
		details = append(details, *payment.Notes)
	}

	return ReceiptRequest{
		ReceiptNumber:   receiptNumber,
		MemberName:      payment.Member.FullName,
		MemberDegree:    payment.Member.Degree,
		Concept:         duesConcept(payment),
		TotalAmount:     settings.MonthlyFeeBase,
		AmountPaid:      payment.Amount,
		PaymentDate:     paymentDate,
		InstitutionName: settings.InstitutionName,
		LogoURL:         strValue(settings.LogoURL),
		Remaining:       duesRemaining(payment, settings.MonthlyFeeBase),
		Details:         details,
		Treasurer:       treasurerSigner(settings),
		VenerableMaster: venerableSigner(settings),
	}
}

func duesConcept(payment *models.MonthlyPayment) string {
	if payment.PaymentType == models.PaymentTypeProntoPagoBenefit {
		return fmt.Sprintf("Beneficio pronto pago - Cuota mensual %s %d", monthNames[payment.Month], payment.Year)
	}
	return fmt.Sprintf("Cuota mensual %s %d", monthNames[payment.Month], payment.Year)
}

// duesRemaining returns the unpaid portion of the base fee, or nil when the
// payment covers it (benefit months never owe anything)
func duesRemaining(payment *models.MonthlyPayment, feeBase float64) *float64 {
	if payment.PaymentType == models.PaymentTypeProntoPagoBenefit {
		return nil
	}
	if payment.Amount >= feeBase {
		return nil
	}
	r := feeBase - payment.Amount
	return &r
}

func treasurerSigner(settings *models.Setting) *Signer {
	return &Signer{
		Name:         settings.TreasurerName,
		Title:        settings.TreasurerTitle,
		SignatureURL: strValue(settings.TreasurerSignatureURL),
	}
}

func venerableSigner(settings *models.Setting) *Signer {
	return &Signer{
		Name:         settings.VenerableName,
		Title:        settings.VenerableTitle,
		SignatureURL: strValue(settings.VenerableSignatureURL),
	}
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
