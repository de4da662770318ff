package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
)

type ExtraordinaryHandler struct {
	extraService *services.ExtraordinaryService
}

func NewExtraordinaryHandler(extraService *services.ExtraordinaryService) *ExtraordinaryHandler {
	return &ExtraordinaryHandler{extraService: extraService}
}

// @Summary List Extraordinary Fees
// @Description Get a paginated list of assessments
// @Tags Extraordinary
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /extraordinary_fees [get]
func (h *ExtraordinaryHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}

	fees, total, err := h.extraService.ListFees(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"extraordinary_fees": fees, "pagination": gin.H{"total": total}})
}

// @Summary Get Extraordinary Fee
// @Description Get an assessment by ID with its payments
// @Tags Extraordinary
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Success 200 {object} models.ExtraordinaryFee
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /extraordinary_fees/{fee_id} [get]
func (h *ExtraordinaryHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)
	fee, err := h.extraService.FindFee(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cuota extraordinaria no encontrada"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extraordinary_fee": fee})
}

type CreateFeeRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	DueDate     string  `json:"due_date"`
}

// @Summary Create Extraordinary Fee
// @Description Levies a new assessment on all active members
// @Tags Extraordinary
// @Accept json
// @Produce json
// @Param request body CreateFeeRequest true "Fee Data"
// @Success 201 {object} models.ExtraordinaryFee
// @Security BearerAuth
// @Router /extraordinary_fees [post]
func (h *ExtraordinaryHandler) Create(c *gin.Context) {
	var req CreateFeeRequest
	if err := BindNestedOrFlat(c, "extraordinary_fee", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fee := &models.ExtraordinaryFee{
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.DueDate != "" {
		if d, err := time.Parse("2006-01-02", req.DueDate); err == nil {
			fee.DueDate = &d
		}
	}

	if err := h.extraService.CreateFee(c.Request.Context(), fee); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"extraordinary_fee": fee})
}

// @Summary Cancel Extraordinary Fee
// @Description Cancels an assessment; no further payments are accepted
// @Tags Extraordinary
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Success 200 {object} models.ExtraordinaryFee
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /extraordinary_fees/{fee_id}/cancel [post]
func (h *ExtraordinaryHandler) Cancel(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)
	fee, err := h.extraService.CancelFee(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"extraordinary_fee": fee})
}

type RecordExtraordinaryRequest struct {
	MemberID    uint    `json:"member_id" binding:"required"`
	AmountPaid  float64 `json:"amount_paid" binding:"required,gt=0"`
	PaymentDate string  `json:"payment_date"`
	SendEmail   bool    `json:"send_email"`
}

// @Summary Record Extraordinary Payment
// @Description Records a member's payment toward an assessment
// @Tags Extraordinary
// @Accept json
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Param request body RecordExtraordinaryRequest true "Payment Data"
// @Success 201 {object} models.ExtraordinaryPaymentResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /extraordinary_fees/{fee_id}/payments [post]
func (h *ExtraordinaryHandler) RecordPayment(c *gin.Context) {
	feeID, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)

	var req RecordExtraordinaryRequest
	if err := BindNestedOrFlat(c, "payment", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.extraService.RecordPayment(c.Request.Context(), services.RecordExtraordinaryInput{
		FeeID:       uint(feeID),
		MemberID:    req.MemberID,
		AmountPaid:  req.AmountPaid,
		PaymentDate: req.PaymentDate,
		SendEmail:   req.SendEmail,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment": payment.ToResponse()})
}

// @Summary Member Remaining Balance
// @Description Returns the member's outstanding balance for an assessment
// @Tags Extraordinary
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Param member_id path int true "Member ID"
// @Success 200 {object} map[string]float64
// @Security BearerAuth
// @Router /extraordinary_fees/{fee_id}/members/{member_id}/remaining [get]
func (h *ExtraordinaryHandler) MemberRemaining(c *gin.Context) {
	feeID, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)
	memberID, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)

	remaining, err := h.extraService.MemberRemaining(c.Request.Context(), uint(feeID), uint(memberID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining": remaining})
}

// @Summary Download Extraordinary Receipt
// @Description Generates and downloads the payment receipt PDF
// @Tags Extraordinary
// @Produce application/pdf
// @Param payment_id path int true "Payment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /extraordinary_payments/{payment_id}/receipt [get]
func (h *ExtraordinaryHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	buf, filename, err := h.extraService.BuildReceipt(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Extraordinary WhatsApp Message
// @Description Returns the WhatsApp confirmation text for a payment
// @Tags Extraordinary
// @Produce json
// @Param payment_id path int true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /extraordinary_payments/{payment_id}/whatsapp_message [get]
func (h *ExtraordinaryHandler) WhatsAppMessage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("payment_id"), 10, 32)

	message, err := h.extraService.WhatsAppMessage(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
