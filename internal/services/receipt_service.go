package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/pkg/logger"
)

// Signer identifies one of the two officers who sign a receipt
type Signer struct {
	Name         string
	Title        string
	SignatureURL string
}

// ReceiptRequest carries everything needed to render a payment receipt
type ReceiptRequest struct {
	ReceiptNumber   string
	MemberName      string
	MemberDegree    string
	Concept         string
	TotalAmount     float64
	AmountPaid      float64
	PaymentDate     string // YYYY-MM-DD
	InstitutionName string
	LogoURL         string
	Remaining       *float64
	Details         []string
	Treasurer       *Signer
	VenerableMaster *Signer
}

// ReceiptService renders payment receipt PDFs and assigns receipt numbers
type ReceiptService struct {
	seqRepo repository.SequenceRepository
	images  *ImageLoader
}

func NewReceiptService(seqRepo repository.SequenceRepository, images *ImageLoader) *ReceiptService {
	return &ReceiptService{
		seqRepo: seqRepo,
		images:  images,
	}
}

// NextReceiptNumber returns the next sequential number for a ledger module,
// formatted as PFX-000123. When the store cannot hand one out, it falls back
// to the prefix plus the last 7 digits of the current epoch milliseconds so
// issuing the receipt is never blocked.
func (s *ReceiptService) NextReceiptNumber(ctx context.Context, module string) string {
	prefix := models.ReceiptPrefix(module)

	n, err := s.seqRepo.Next(ctx, module)
	if err != nil {
		logger.Error(fmt.Sprintf("[ReceiptService] Sequence unavailable for %s, using timestamp fallback: %v", module, err))
		ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
		return prefix + ms[len(ms)-7:]
	}

	return fmt.Sprintf("%s-%06d", prefix, n)
}

// GeneratePaymentReceipt renders a formal payment receipt (portrait A4).
// Layout: header with logo left and title block right, recipient and concept
// info, highlighted amount panel, conformity sentence, two signature columns,
// institutional footer. Missing images or optional fields are simply omitted.
func (s *ReceiptService) GeneratePaymentReceipt(ctx context.Context, req ReceiptRequest) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	const (
		pageWidth  = 210.0
		pageHeight = 297.0
		ml         = 25.0
		mr         = 25.0
	)
	cw := pageWidth - ml - mr

	// ── Header ──
	y := 25.0

	logo := s.loadLogo(ctx, req.LogoURL)
	if logo != nil {
		s.placeImage(pdf, logo, "receipt_logo", ml, y-5, 30, 30, false)
	}

	pdf.SetFont("Helvetica", "B", 26)
	textRight(pdf, tr, "RECIBO DE PAGO", pageWidth-mr, y+5)

	y += 15
	pdf.SetFont("Helvetica", "", 11)
	textRight(pdf, tr, req.InstitutionName, pageWidth-mr, y)

	y += 8
	pdf.SetFont("Helvetica", "", 10)
	textRight(pdf, tr, fmt.Sprintf("Recibo N°: %s", req.ReceiptNumber), pageWidth-mr, y)
	y += 5
	textRight(pdf, tr, fmt.Sprintf("Fecha: %s", FormatSpanishDate(req.PaymentDate)), pageWidth-mr, y)

	y += 10
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.6)
	pdf.Line(ml, y, pageWidth-mr, y)

	// ── Recipient block ──
	y += 15
	labelCol := ml
	valueCol := ml + 45

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(labelCol, y, tr("Recibido de:"))
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(valueCol, y, tr(req.MemberName))
	y += 8

	if req.MemberDegree != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Text(labelCol, y, tr("Grado:"))
		pdf.SetFont("Helvetica", "", 11)
		pdf.Text(valueCol, y, tr(models.DegreeLabel(req.MemberDegree)))
		y += 8
	}

	// ── Concept block ──
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(labelCol, y, tr("Concepto:"))
	pdf.SetFont("Helvetica", "", 11)
	// Split the raw UTF-8 text; SplitText cannot take translated cp1252 bytes
	conceptLines := pdf.SplitText(req.Concept, cw-50)
	for _, line := range conceptLines {
		pdf.Text(valueCol, y, tr(line))
		y += 6
	}
	y += 4

	if len(req.Details) > 0 {
		y += 4
		pdf.SetFont("Helvetica", "", 10)
		for _, detail := range req.Details {
			pdf.Text(labelCol+5, y, tr(fmt.Sprintf("• %s", detail)))
			y += 6
		}
	}

	// ── Amount panel ──
	y += 12

	boxY := y
	hasRemaining := req.Remaining != nil && *req.Remaining > 0
	boxH := 45.0
	if hasRemaining {
		boxH = 55.0
	}

	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.RoundedRect(ml, boxY, cw, boxH, 3, "1234", "FD")

	y = boxY + 12

	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(ml+10, y, tr("Valor de la cuota:"))
	pdf.SetFont("Helvetica", "B", 11)
	textRight(pdf, tr, fmt.Sprintf("$%.2f", req.TotalAmount), ml+cw-10, y)
	y += 10

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(ml+10, y, tr("MONTO PAGADO:"))
	textRight(pdf, tr, fmt.Sprintf("$%.2f", req.AmountPaid), ml+cw-10, y)
	y += 8

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(ml+10, y, tr(fmt.Sprintf("(%s dólares)", AmountToWords(req.AmountPaid))))
	pdf.SetTextColor(0, 0, 0)

	if hasRemaining {
		y += 10
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(180, 0, 0)
		pdf.Text(ml+10, y, tr("Saldo pendiente:"))
		textRight(pdf, tr, fmt.Sprintf("$%.2f", *req.Remaining), ml+cw-10, y)
		pdf.SetTextColor(0, 0, 0)
	}

	// ── Conformity sentence ──
	y = boxY + boxH + 25
	pdf.SetFont("Helvetica", "", 10)
	textCenter(pdf, tr, "Para constancia de lo recibido, se firma el presente comprobante en señal de conformidad.", pageWidth/2, y)

	// ── Signatures ──
	sigY := y + 45
	sigLineW := 60.0
	leftX := ml + cw*0.25
	rightX := ml + cw*0.75

	if req.Treasurer != nil && req.Treasurer.SignatureURL != "" {
		if img := s.images.FetchImage(ctx, req.Treasurer.SignatureURL); img != nil {
			s.placeImage(pdf, img, "sig_treasurer", rightX, sigY-30, 55, 28, true)
		}
	}
	if req.VenerableMaster != nil && req.VenerableMaster.SignatureURL != "" {
		if img := s.images.FetchImage(ctx, req.VenerableMaster.SignatureURL); img != nil {
			s.placeImage(pdf, img, "sig_vm", leftX, sigY-30, 55, 28, true)
		}
	}

	pdf.SetLineWidth(0.4)
	pdf.SetDrawColor(60, 60, 60)

	treasurerName, treasurerTitle := signerOrDefault(req.Treasurer, "Tesorero")
	vmName, vmTitle := signerOrDefault(req.VenerableMaster, "Venerable Maestro")

	pdf.Line(leftX-sigLineW/2, sigY, leftX+sigLineW/2, sigY)
	pdf.SetFont("Helvetica", "", 9)
	textCenter(pdf, tr, treasurerName, leftX, sigY+5)
	pdf.SetFont("Helvetica", "B", 9)
	textCenter(pdf, tr, treasurerTitle, leftX, sigY+10)

	pdf.Line(rightX-sigLineW/2, sigY, rightX+sigLineW/2, sigY)
	pdf.SetFont("Helvetica", "", 9)
	textCenter(pdf, tr, vmName, rightX, sigY+5)
	pdf.SetFont("Helvetica", "B", 9)
	textCenter(pdf, tr, vmTitle, rightX, sigY+10)

	// ── Footer ──
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetLineWidth(0.2)
	pdf.Line(ml, pageHeight-20, pageWidth-mr, pageHeight-20)
	textCenter(pdf, tr, "Este comprobante de pago es un documento válido emitido por la tesorería de la institución.", pageWidth/2, pageHeight-15)
	pdf.SetTextColor(0, 0, 0)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf, nil
}

// loadLogo resolves the custom logo, falling back to the bundled one when the
// custom load fails or none is configured. A nil result means the header is
// rendered without a logo.
func (s *ReceiptService) loadLogo(ctx context.Context, logoURL string) *LoadedImage {
	if logoURL != "" {
		if img := s.images.FetchImage(ctx, logoURL); img != nil {
			return img
		}
	}
	return s.images.DefaultLogo()
}

// placeImage scales an image into a maxW×maxH box keeping aspect ratio and
// draws it. When centered is true, x is the horizontal center of the box.
func (s *ReceiptService) placeImage(pdf *gofpdf.Fpdf, img *LoadedImage, name string, x, y, maxW, maxH float64, centered bool) {
	if img.Width <= 0 || img.Height <= 0 {
		return
	}

	r := maxW / float64(img.Width)
	if hr := maxH / float64(img.Height); hr < r {
		r = hr
	}
	w := float64(img.Width) * r
	h := float64(img.Height) * r

	if centered {
		x -= w / 2
	}

	opts := gofpdf.ImageOptions{ImageType: img.Format, ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func signerOrDefault(s *Signer, fallback string) (name, title string) {
	name, title = fallback, fallback
	if s != nil {
		if s.Name != "" {
			name = s.Name
		}
		if s.Title != "" {
			title = s.Title
		}
	}
	return name, title
}

// textRight draws baseline text with its right edge at x
func textRight(pdf *gofpdf.Fpdf, tr func(string) string, text string, x, y float64) {
	t := tr(text)
	pdf.Text(x-pdf.GetStringWidth(t), y, t)
}

// textCenter draws baseline text centered on x
func textCenter(pdf *gofpdf.Fpdf, tr func(string) string, text string, x, y float64) {
	t := tr(text)
	pdf.Text(x-pdf.GetStringWidth(t)/2, y, t)
}

var spanishMonths = []string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatSpanishDate renders an ISO date as "02 de enero de 2026". Anything
// that does not parse is returned unchanged.
func FormatSpanishDate(iso string) string {
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%02d de %s de %d", d.Day(), spanishMonths[d.Month()], d.Year())
}

// ReceiptFilename builds a filesystem-safe download name for a receipt PDF.
// Non-alphanumeric runes in the member name become underscores and the result
// is capped at 20 runes.
func ReceiptFilename(memberName string) string {
	var b strings.Builder
	for _, r := range memberName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	safe := []rune(b.String())
	if len(safe) > 20 {
		safe = safe[:20]
	}

	return fmt.Sprintf("Recibo_%s_%s.pdf", string(safe), time.Now().Format("2006-01-02"))
}

// ReceiptWhatsAppMessage builds the confirmation text sent to a member after
// a payment is recorded.
func ReceiptWhatsAppMessage(memberName, concept string, amountPaid float64, remaining *float64) string {
	firstName := memberName
	if fields := strings.Fields(memberName); len(fields) > 0 {
		firstName = fields[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Estimado H∴ %s,\n\n", firstName)
	fmt.Fprintf(&b, "Se ha registrado su pago correspondiente a: %s\n", concept)
	fmt.Fprintf(&b, "💰 Monto pagado: $%.2f\n", amountPaid)

	if remaining != nil && *remaining > 0 {
		fmt.Fprintf(&b, "⚠️ Saldo pendiente: $%.2f\n", *remaining)
	}

	b.WriteString("\nFraternalmente,\nTesorería")
	return b.String()
}
