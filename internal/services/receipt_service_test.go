package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/stretchr/testify/assert"
)

// Mock SequenceRepository
type mockSequenceRepository struct {
	mockNext func(ctx context.Context, module string) (int64, error)
}

func (m *mockSequenceRepository) Next(ctx context.Context, module string) (int64, error) {
	if m.mockNext != nil {
		return m.mockNext(ctx, module)
	}
	return 1, nil
}

func newTestReceiptService(seq *mockSequenceRepository) *ReceiptService {
	return NewReceiptService(seq, NewImageLoader(nil))
}

func TestNextReceiptNumber_Format(t *testing.T) {
	seq := &mockSequenceRepository{
		mockNext: func(ctx context.Context, module string) (int64, error) {
			assert.Equal(t, models.ReceiptModuleTreasury, module)
			return 7, nil
		},
	}
	service := newTestReceiptService(seq)

	number := service.NextReceiptNumber(context.Background(), models.ReceiptModuleTreasury)
	assert.Equal(t, "TSR-000007", number)
}

func TestNextReceiptNumber_PerModulePrefix(t *testing.T) {
	seq := &mockSequenceRepository{
		mockNext: func(ctx context.Context, module string) (int64, error) {
			return 123, nil
		},
	}
	service := newTestReceiptService(seq)

	assert.Equal(t, "EXT-000123", service.NextReceiptNumber(context.Background(), models.ReceiptModuleExtraordinary))
	assert.Equal(t, "GRD-000123", service.NextReceiptNumber(context.Background(), models.ReceiptModuleDegree))
}

func TestNextReceiptNumber_FallbackOnSequenceError(t *testing.T) {
	seq := &mockSequenceRepository{
		mockNext: func(ctx context.Context, module string) (int64, error) {
			return 0, errors.New("connection refused")
		},
	}
	service := newTestReceiptService(seq)

	number := service.NextReceiptNumber(context.Background(), models.ReceiptModuleDegree)

	// Timestamp fallback: prefix plus 7 digits, never an empty number
	assert.True(t, strings.HasPrefix(number, "GRD"))
	assert.Len(t, number, 10)
}

func TestGeneratePaymentReceipt(t *testing.T) {
	service := newTestReceiptService(&mockSequenceRepository{})

	buf, err := service.GeneratePaymentReceipt(context.Background(), ReceiptRequest{
		ReceiptNumber:   "TSR-000042",
		MemberName:      "Juan Pérez",
		MemberDegree:    models.DegreeMaster,
		Concept:         "Cuota mensual de Enero 2026",
		TotalAmount:     50,
		AmountPaid:      50,
		PaymentDate:     "2026-01-15",
		InstitutionName: "Logia Luz del Pacífico No. 7",
	})

	assert.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 1000)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"), "output should be a PDF document")
}

func TestGeneratePaymentReceipt_WithRemainingBalance(t *testing.T) {
	service := newTestReceiptService(&mockSequenceRepository{})

	remaining := 25.0
	buf, err := service.GeneratePaymentReceipt(context.Background(), ReceiptRequest{
		ReceiptNumber:   "EXT-000003",
		MemberName:      "Carlos Andrade",
		Concept:         "Cuota extraordinaria: Reparación del templo",
		TotalAmount:     100,
		AmountPaid:      75,
		PaymentDate:     "2026-03-01",
		InstitutionName: "Logia Luz del Pacífico No. 7",
		Remaining:       &remaining,
		Details:         []string{"Abono 2 de 3"},
		Treasurer:       &Signer{Name: "Pedro Mena", Title: "Tesorero"},
		VenerableMaster: &Signer{Name: "Luis Vélez", Title: "Venerable Maestro"},
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestGeneratePaymentReceipt_AccentedConceptWraps(t *testing.T) {
	service := newTestReceiptService(&mockSequenceRepository{})

	// Long enough to wrap across several lines, accented throughout
	buf, err := service.GeneratePaymentReceipt(context.Background(), ReceiptRequest{
		ReceiptNumber:   "EXT-000009",
		MemberName:      "Ramón Núñez",
		Concept:         "Cuota extraordinaria: Reparación del salón de sesiones, adquisición de útiles y contribución para la celebración del aniversario número cincuenta",
		TotalAmount:     200,
		AmountPaid:      200,
		PaymentDate:     "2026-05-20",
		InstitutionName: "Logia Luz del Pacífico No. 7",
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestGeneratePaymentReceipt_ZeroRemainingOmitsBalanceRow(t *testing.T) {
	service := newTestReceiptService(&mockSequenceRepository{})

	req := ReceiptRequest{
		ReceiptNumber:   "TSR-000050",
		MemberName:      "Juan Pérez",
		Concept:         "Cuota mensual de Febrero 2026",
		TotalAmount:     50,
		AmountPaid:      50,
		PaymentDate:     "2026-02-10",
		InstitutionName: "Logia Luz del Pacífico No. 7",
	}

	without, err := service.GeneratePaymentReceipt(context.Background(), req)
	assert.NoError(t, err)

	zero := 0.0
	req.Remaining = &zero
	withZero, err := service.GeneratePaymentReceipt(context.Background(), req)
	assert.NoError(t, err)

	// A zero balance renders the same compact panel as no balance at all
	assert.True(t, strings.HasPrefix(withZero.String(), "%PDF"))
	assert.Equal(t, without.Len(), withZero.Len())
}

func TestFormatSpanishDate(t *testing.T) {
	assert.Equal(t, "02 de enero de 2026", FormatSpanishDate("2026-01-02"))
	assert.Equal(t, "15 de septiembre de 2025", FormatSpanishDate("2025-09-15"))

	// Unparseable input is passed through untouched
	assert.Equal(t, "ayer", FormatSpanishDate("ayer"))
	assert.Equal(t, "", FormatSpanishDate(""))
}

func TestReceiptFilename(t *testing.T) {
	name := ReceiptFilename("José Pérez")
	assert.True(t, strings.HasPrefix(name, "Recibo_Jos__P_rez_"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	// Long names are capped at 20 runes
	long := ReceiptFilename("Maximiliano Fernández de la Torre y Bustamante")
	base := strings.TrimPrefix(long, "Recibo_")
	base = base[:strings.LastIndex(base, "_")]
	assert.LessOrEqual(t, len([]rune(base)), 20)
}

func TestReceiptWhatsAppMessage(t *testing.T) {
	msg := ReceiptWhatsAppMessage("Juan Pérez", "Cuota mensual de Enero 2026", 50, nil)

	assert.Contains(t, msg, "Estimado H∴ Juan,")
	assert.Contains(t, msg, "Se ha registrado su pago correspondiente a: Cuota mensual de Enero 2026")
	assert.Contains(t, msg, "Monto pagado: $50.00")
	assert.Contains(t, msg, "Fraternalmente,\nTesorería")
	assert.NotContains(t, msg, "Saldo pendiente")
}

func TestReceiptWhatsAppMessage_WithRemaining(t *testing.T) {
	remaining := 25.0
	msg := ReceiptWhatsAppMessage("Carlos Andrade Vera", "Cuota extraordinaria", 75, &remaining)

	assert.Contains(t, msg, "Estimado H∴ Carlos,")
	assert.Contains(t, msg, "Saldo pendiente: $25.00")
}
