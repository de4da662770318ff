package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
)

type ReportService struct {
	memberRepo   repository.MemberRepository
	monthlyRepo  repository.MonthlyPaymentRepository
	extraRepo    repository.ExtraordinaryRepository
	degreeRepo   repository.DegreeFeeRepository
	expenseRepo  repository.ExpenseRepository
	settingsRepo repository.SettingRepository
	defaults     *models.Setting
}

func NewReportService(
	memberRepo repository.MemberRepository,
	monthlyRepo repository.MonthlyPaymentRepository,
	extraRepo repository.ExtraordinaryRepository,
	degreeRepo repository.DegreeFeeRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingRepository,
	defaults *models.Setting,
) *ReportService {
	return &ReportService{
		memberRepo:   memberRepo,
		monthlyRepo:  monthlyRepo,
		extraRepo:    extraRepo,
		degreeRepo:   degreeRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

// GenerateDuesCSV generates a CSV of every monthly dues payment of a fiscal year
func (s *ReportService) GenerateDuesCSV(ctx context.Context) (*bytes.Buffer, error) {
	payments, err := s.monthlyRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	fy := CurrentFiscalYear(time.Now())

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Miembro", "Grado", "Mes", "Año", "Monto", "Tipo", "Fecha Pago", "Recibo"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	typeLabels := map[string]string{
		models.PaymentTypeRegular:           "Regular",
		models.PaymentTypeProntoPagoBenefit: "Beneficio pronto pago",
	}

	for _, p := range payments {
		if !fy.Contains(p.Month, p.Year) {
			continue
		}

		memberName := "N/A"
		degree := ""
		if p.Member.ID != 0 {
			memberName = p.Member.FullName
			degree = models.DegreeLabel(p.Member.Degree)
		}

		payDate := ""
		if p.PaymentDate != nil {
			payDate = p.PaymentDate.Format("2006-01-02")
		}

		paymentType := p.PaymentType
		if val, ok := typeLabels[paymentType]; ok {
			paymentType = val
		}

		record := []string{
			fmt.Sprintf("%d", p.ID),
			memberName,
			degree,
			monthNames[p.Month],
			fmt.Sprintf("%d", p.Year),
			fmt.Sprintf("%.2f", p.Amount),
			paymentType,
			payDate,
			strValue(p.ReceiptNumber),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b, nil
}

// GenerateArrearsCSV generates a CSV of active members with unpaid fiscal months
func (s *ReportService) GenerateArrearsCSV(ctx context.Context) (*bytes.Buffer, error) {
	entries, err := s.ArrearsEntries(ctx)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Miembro", "Grado", "Teléfono", "Meses Pendientes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		record := []string{e.MemberName, e.Degree, e.Phone, fmt.Sprintf("%d", e.PendingMonths)}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return b, nil
}

// GenerateExpensesCSV generates a CSV of all recorded expenses
func (s *ReportService) GenerateExpensesCSV(ctx context.Context) (*bytes.Buffer, error) {
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Descripción", "Categoría", "Monto", "Fecha"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range expenses {
		record := []string{
			fmt.Sprintf("%d", e.ID),
			e.Description,
			e.CategoryOrDefault(),
			fmt.Sprintf("%.2f", e.Amount),
			e.ExpenseDate.Format("2006-01-02"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return b, nil
}

// ArrearsRecord is one row of the arrears report
type ArrearsRecord struct {
	MemberID      uint
	MemberName    string
	Degree        string
	Phone         string
	PendingMonths int
}

// ArrearsEntries lists active members missing at least one fiscal month,
// sorted by the repository's member ordering. Pronto pago benefit months
// count as covered.
func (s *ReportService) ArrearsEntries(ctx context.Context) ([]ArrearsRecord, error) {
	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	fy := CurrentFiscalYear(time.Now())

	var entries []ArrearsRecord
	for _, m := range members {
		payments, err := s.monthlyRepo.FindByMember(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		covered := make(map[[2]int]bool)
		for _, p := range payments {
			if p.CoversFee(settings.MonthlyFeeBase) {
				covered[[2]int{p.Month, p.Year}] = true
			}
		}

		pending := 0
		for _, fm := range fy.Months() {
			if !covered[[2]int{fm.Month, fm.Year}] {
				pending++
			}
		}

		if pending > 0 {
			entries = append(entries, ArrearsRecord{
				MemberID:      m.ID,
				MemberName:    m.FullName,
				Degree:        models.DegreeLabel(m.Degree),
				Phone:         m.Phone,
				PendingMonths: pending,
			})
		}
	}

	return entries, nil
}

// Helper to generate PDF from HTML template
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	// Try path relative to project root first, then relative to the package
	// so tests resolve it too
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s (path: %s): %w", templateName, tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

// GenerateMemberStatementPDF generates a PDF statement of account for a member
// covering the current fiscal year
func (s *ReportService) GenerateMemberStatementPDF(ctx context.Context, memberID uint) (*bytes.Buffer, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx, s.defaults)
	if err != nil {
		return nil, err
	}

	payments, err := s.monthlyRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	fy := CurrentFiscalYear(time.Now())

	type MonthRow struct {
		Label   string
		Amount  string
		Type    string
		Receipt string
		Paid    bool
	}

	type ExtraRow struct {
		Concept string
		Due     string
		Paid    string
		Pending string
	}

	type DegreeRow struct {
		Degree  string
		Amount  string
		Date    string
		Receipt string
	}

	type StatementData struct {
		Institution string
		MemberName  string
		Degree      string
		FiscalYear  string
		Date        string
		Months      []MonthRow
		Extras      []ExtraRow
		Degrees     []DegreeRow
		TotalPaid   string
	}

	byPeriod := make(map[[2]int]*models.MonthlyPayment)
	for i := range payments {
		p := &payments[i]
		byPeriod[[2]int{p.Month, p.Year}] = p
	}

	totalPaid := 0.0
	var months []MonthRow
	for _, fm := range fy.Months() {
		row := MonthRow{Label: fmt.Sprintf("%s %d", monthNames[fm.Month], fm.Year)}
		if p, ok := byPeriod[[2]int{fm.Month, fm.Year}]; ok {
			row.Paid = true
			row.Amount = fmt.Sprintf("%.2f", p.Amount)
			row.Receipt = strValue(p.ReceiptNumber)
			if p.PaymentType == models.PaymentTypeProntoPagoBenefit {
				row.Type = "Beneficio pronto pago"
			} else {
				row.Type = "Regular"
			}
			if p.CountsAsIncome() {
				totalPaid += p.Amount
			}
		}
		months = append(months, row)
	}

	fees, err := s.extraRepo.FindAllFees(ctx)
	if err != nil {
		return nil, err
	}

	var extras []ExtraRow
	for _, fee := range fees {
		if fee.Status == models.FeeStatusCancelled {
			continue
		}

		feePayments, err := s.extraRepo.FindPaymentsByFeeAndMember(ctx, fee.ID, memberID)
		if err != nil {
			return nil, err
		}

		paid := 0.0
		for _, p := range feePayments {
			paid += p.AmountPaid
		}
		totalPaid += paid

		pending := fee.Amount - paid
		if pending < 0 {
			pending = 0
		}

		extras = append(extras, ExtraRow{
			Concept: fee.Description,
			Due:     fmt.Sprintf("%.2f", fee.Amount),
			Paid:    fmt.Sprintf("%.2f", paid),
			Pending: fmt.Sprintf("%.2f", pending),
		})
	}

	degreeFees, err := s.degreeRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var degrees []DegreeRow
	for _, f := range degreeFees {
		date := ""
		if f.PaymentDate != nil {
			date = f.PaymentDate.Format("02/01/2006")
		}
		degrees = append(degrees, DegreeRow{
			Degree:  models.DegreeLabel(f.Degree),
			Amount:  fmt.Sprintf("%.2f", f.Amount),
			Date:    date,
			Receipt: strValue(f.ReceiptNumber),
		})
		totalPaid += f.Amount
	}

	data := StatementData{
		Institution: settings.InstitutionName,
		MemberName:  member.FullName,
		Degree:      models.DegreeLabel(member.Degree),
		FiscalYear:  fmt.Sprintf("%d-%d", fy.StartYear, fy.EndYear),
		Date:        time.Now().Format("02/01/2006"),
		Months:      months,
		Extras:      extras,
		Degrees:     degrees,
		TotalPaid:   fmt.Sprintf("%.2f", totalPaid),
	}

	return s.generatePDF("member_statement.html", data)
}
