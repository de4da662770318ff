package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the treasury dashboard as CSV, XLSX, or PDF
type ExportService struct {
	dashboardSvc *DashboardService
}

func NewExportService(dashboardSvc *DashboardService) *ExportService {
	return &ExportService{dashboardSvc: dashboardSvc}
}

func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	overview, flow, categories, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Reporte de Tesorería", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{"Año Logial", fmt.Sprintf("%d-%d", overview.FiscalYearStart, overview.FiscalYearEnd)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Resumen General"})
	_ = writer.Write([]string{"Métrica", "Valor"})
	_ = writer.Write([]string{"Ingresos Tesorería", fmt.Sprintf("%.2f", overview.TreasuryIncome)})
	_ = writer.Write([]string{"Cuotas Extraordinarias", fmt.Sprintf("%.2f", overview.ExtraordinaryIncome)})
	_ = writer.Write([]string{"Derechos de Grado", fmt.Sprintf("%.2f", overview.DegreeFeeIncome)})
	_ = writer.Write([]string{"Total Ingresos", fmt.Sprintf("%.2f", overview.TotalIncome)})
	_ = writer.Write([]string{"Total Gastos", fmt.Sprintf("%.2f", overview.TotalExpenses)})
	_ = writer.Write([]string{"Balance", fmt.Sprintf("%.2f", overview.Balance)})
	_ = writer.Write([]string{"Miembros Activos", fmt.Sprintf("%d", overview.ActiveMembers)})
	_ = writer.Write([]string{"Miembros con Mora", fmt.Sprintf("%d", overview.MembersInArrears)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Flujo Mensual"})
	_ = writer.Write([]string{"Mes", "Tesorería", "Extraordinarias", "Gastos", "Balance"})
	for _, p := range flow {
		_ = writer.Write([]string{
			fmt.Sprintf("%s %d", p.Label, p.Year),
			fmt.Sprintf("%.2f", p.Treasury),
			fmt.Sprintf("%.2f", p.Extraordinary),
			fmt.Sprintf("%.2f", p.Expenses),
			fmt.Sprintf("%.2f", p.Balance),
		})
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Gastos por Categoría"})
	_ = writer.Write([]string{"Categoría", "Monto"})
	for _, c := range categories {
		_ = writer.Write([]string{c.Name, fmt.Sprintf("%.2f", c.Value)})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reporte_tesoreria_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	overview, flow, categories, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Tesorería"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Reporte de Tesorería")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	_ = f.SetCellValue(sheet, "A2", fmt.Sprintf("Año Logial %d-%d", overview.FiscalYearStart, overview.FiscalYearEnd))

	_ = f.SetCellValue(sheet, "A4", "Resumen General")
	_ = f.SetCellValue(sheet, "A5", "Métrica")
	_ = f.SetCellValue(sheet, "B5", "Valor")

	summary := [][]interface{}{
		{"Ingresos Tesorería", overview.TreasuryIncome},
		{"Cuotas Extraordinarias", overview.ExtraordinaryIncome},
		{"Derechos de Grado", overview.DegreeFeeIncome},
		{"Total Ingresos", overview.TotalIncome},
		{"Total Gastos", overview.TotalExpenses},
		{"Balance", overview.Balance},
		{"Miembros Activos", overview.ActiveMembers},
		{"Miembros con Mora", overview.MembersInArrears},
	}
	for i, row := range summary {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", 6+i), row[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", 6+i), row[1])
	}

	base := 6 + len(summary) + 1
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Flujo Mensual")
	cols := []string{"Mes", "Tesorería", "Extraordinarias", "Gastos", "Balance"}
	for i, col := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, base+1)
		_ = f.SetCellValue(sheet, cell, col)
	}
	for r, p := range flow {
		values := []interface{}{fmt.Sprintf("%s %d", p.Label, p.Year), p.Treasury, p.Extraordinary, p.Expenses, p.Balance}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, base+2+r)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	base = base + 2 + len(flow) + 1
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Gastos por Categoría")
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base+1), "Categoría")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", base+1), "Monto")
	for i, c := range categories {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base+2+i), c.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", base+2+i), c.Value)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reporte_tesoreria_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPDF(ctx context.Context) ([]byte, string, error) {
	overview, flow, categories, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Reporte de Tesorería"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, tr(fmt.Sprintf("Año Logial %d-%d", overview.FiscalYearStart, overview.FiscalYearEnd)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr("Resumen General"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	rows := []struct {
		label string
		value string
	}{
		{"Ingresos Tesorería:", fmt.Sprintf("$%.2f", overview.TreasuryIncome)},
		{"Cuotas Extraordinarias:", fmt.Sprintf("$%.2f", overview.ExtraordinaryIncome)},
		{"Derechos de Grado:", fmt.Sprintf("$%.2f", overview.DegreeFeeIncome)},
		{"Total Ingresos:", fmt.Sprintf("$%.2f", overview.TotalIncome)},
		{"Total Gastos:", fmt.Sprintf("$%.2f", overview.TotalExpenses)},
		{"Balance:", fmt.Sprintf("$%.2f", overview.Balance)},
		{"Miembros Activos:", fmt.Sprintf("%d", overview.ActiveMembers)},
		{"Miembros con Mora:", fmt.Sprintf("%d", overview.MembersInArrears)},
	}
	for _, row := range rows {
		pdf.Cell(60, 10, tr(row.label))
		pdf.Cell(40, 10, row.value)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr("Flujo Mensual"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, p := range flow {
		pdf.Cell(25, 8, fmt.Sprintf("%s %d", p.Label, p.Year))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", p.Treasury))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", p.Extraordinary))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", p.Expenses))
		pdf.Cell(35, 8, fmt.Sprintf("$%.2f", p.Balance))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, tr("Gastos por Categoría"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, c := range categories {
		pdf.Cell(60, 10, tr(c.Name+":"))
		pdf.Cell(40, 10, fmt.Sprintf("$%.2f", c.Value))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("reporte_tesoreria_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) collect(ctx context.Context) (*models.DashboardOverview, []models.MonthlyFlowPoint, []models.CategoryTotal, error) {
	overview, err := s.dashboardSvc.GetOverview(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	flow, err := s.dashboardSvc.GetMonthlyFlow(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	categories, err := s.dashboardSvc.GetExpensesByCategory(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return overview, flow, categories, nil
}
