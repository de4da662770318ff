package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
)

type DuesHandler struct {
	duesService *services.DuesService
}

func NewDuesHandler(duesService *services.DuesService) *DuesHandler {
	return &DuesHandler{duesService: duesService}
}

// @Summary List Monthly Payments
// @Description Get a paginated list of monthly dues payments
// @Tags Dues
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param member_id query int false "Filter by member"
// @Param year query int false "Filter by year"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /monthly_payments [get]
func (h *DuesHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if memberID := c.Query("member_id"); memberID != "" {
		query.Filters["member_id"] = memberID
	}
	if year := c.Query("year"); year != "" {
		query.Filters["year"] = year
	}

	payments, total, err := h.duesService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"monthly_payments": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Monthly Payment
// @Description Get a monthly payment by ID
// @Tags Dues
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} models.MonthlyPaymentResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments/{payment_id} [get]
func (h *DuesHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	payment, err := h.duesService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pago no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly_payment": payment.ToResponse()})
}

type RecordDuesRequest struct {
	MemberID    uint    `json:"member_id" binding:"required"`
	Month       int     `json:"month" binding:"required,min=1,max=12"`
	Year        int     `json:"year" binding:"required"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Notes       *string `json:"notes"`
	SendEmail   bool    `json:"send_email"`
}

// @Summary Record Monthly Payment
// @Description Records a dues payment and assigns its receipt number
// @Tags Dues
// @Accept json
// @Produce json
// @Param request body RecordDuesRequest true "Payment Data"
// @Success 201 {object} models.MonthlyPaymentResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments [post]
func (h *DuesHandler) Create(c *gin.Context) {
	var req RecordDuesRequest
	if err := BindNestedOrFlat(c, "monthly_payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.duesService.RecordPayment(c.Request.Context(), services.RecordDuesInput{
		MemberID:    req.MemberID,
		Month:       req.Month,
		Year:        req.Year,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
		SendEmail:   req.SendEmail,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"monthly_payment": payment.ToResponse()})
}

type ProntoPagoRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
	Month    int  `json:"month" binding:"required,min=1,max=12"`
	Year     int  `json:"year" binding:"required"`
}

// @Summary Grant Pronto Pago Benefit
// @Description Marks a month as covered by the early payment benefit (no cash)
// @Tags Dues
// @Accept json
// @Produce json
// @Param request body ProntoPagoRequest true "Benefit Data"
// @Success 201 {object} models.MonthlyPaymentResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments/pronto_pago [post]
func (h *DuesHandler) GrantProntoPago(c *gin.Context) {
	var req ProntoPagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.duesService.GrantProntoPagoBenefit(c.Request.Context(), req.MemberID, req.Month, req.Year)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"monthly_payment": payment.ToResponse()})
}

// @Summary Delete Monthly Payment
// @Description Deletes a dues payment
// @Tags Dues
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments/{payment_id} [delete]
func (h *DuesHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)
	if err := h.duesService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pago eliminado"})
}

// @Summary Download Dues Receipt
// @Description Generates and downloads the payment receipt PDF
// @Tags Dues
// @Produce application/pdf
// @Param payment_id path int true "Payment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments/{payment_id}/receipt [get]
func (h *DuesHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	buf, filename, err := h.duesService.BuildReceipt(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Dues WhatsApp Message
// @Description Returns the WhatsApp confirmation text for a payment
// @Tags Dues
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /monthly_payments/{payment_id}/whatsapp_message [get]
func (h *DuesHandler) WhatsAppMessage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	message, err := h.duesService.WhatsAppMessage(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
