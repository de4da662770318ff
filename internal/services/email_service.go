package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/jvintimilla/logia-api/internal/config"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendRecoveryCode(ctx context.Context, user *models.User, code string) error {
	data := struct {
		Name        string
		Code        string
		Minutes     int
		Institution string
	}{
		Name:        user.FullName,
		Code:        code,
		Minutes:     15,
		Institution: s.config.InstitutionName,
	}

	body, err := s.renderTemplate("reset_code.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Código de recuperación",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Código de recuperación", user.Email))
	return nil
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User, tempPassword string) error {
	data := struct {
		Name         string
		Email        string
		TempPassword string
		Institution  string
	}{
		Name:         user.FullName,
		Email:        user.Email,
		TempPassword: tempPassword,
		Institution:  s.config.InstitutionName,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Cuenta creada",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Cuenta creada", user.Email))
	return nil
}

// SendReceipt emails a member their payment receipt with the PDF attached
func (s *EmailService) SendReceipt(ctx context.Context, member *models.Member, receiptNumber, concept string, amountPaid float64, pdf []byte, filename string) error {
	if member.Email == "" {
		logger.Warn(fmt.Sprintf("[Email] Member %d has no email, skipping receipt %s", member.ID, receiptNumber))
		return nil
	}

	data := struct {
		Name          string
		ReceiptNumber string
		Concept       string
		AmountPaid    string
		Institution   string
	}{
		Name:          member.FirstName(),
		ReceiptNumber: receiptNumber,
		Concept:       concept,
		AmountPaid:    fmt.Sprintf("$%.2f", amountPaid),
		Institution:   s.config.InstitutionName,
	}

	body, err := s.renderTemplate("receipt_issued.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{member.Email},
		Subject: fmt.Sprintf("Recibo de pago %s", receiptNumber),
		Html:    body,
		Attachments: []*resend.Attachment{
			{
				Filename:    filename,
				Content:     pdf,
				ContentType: "application/pdf",
			},
		},
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", member.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Recibo de pago %s", member.Email, receiptNumber))
	return nil
}

// ArrearsEntry is one row of the monthly arrears summary mail
type ArrearsEntry struct {
	MemberName string
	Degree     string
	Phone      string
}

// SendArrearsSummary mails the treasury officers the current arrears list
func (s *EmailService) SendArrearsSummary(ctx context.Context, user *models.User, entries []ArrearsEntry) error {
	data := struct {
		Name        string
		Entries     []ArrearsEntry
		Total       int
		Institution string
	}{
		Name:        user.FullName,
		Entries:     entries,
		Total:       len(entries),
		Institution: s.config.InstitutionName,
	}

	body, err := s.renderTemplate("arrears_summary.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: fmt.Sprintf("Miembros con mora (%d)", len(entries)),
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Miembros con mora (%d)", user.Email, len(entries)))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
