package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
)

type DegreeHandler struct {
	degreeService *services.DegreeService
}

func NewDegreeHandler(degreeService *services.DegreeService) *DegreeHandler {
	return &DegreeHandler{degreeService: degreeService}
}

// @Summary List Degree Fees
// @Description Get a paginated list of degree rights payments
// @Tags Degrees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param member_id query int false "Filter by member"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /degree_fees [get]
func (h *DegreeHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if memberID := c.Query("member_id"); memberID != "" {
		query.Filters["member_id"] = memberID
	}

	fees, total, err := h.degreeService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, f := range fees {
		responses = append(responses, f.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"degree_fees": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Degree Fee
// @Description Get a degree fee by ID
// @Tags Degrees
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Success 200 {object} models.DegreeFeeResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /degree_fees/{fee_id} [get]
func (h *DegreeHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)
	fee, err := h.degreeService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Derecho de grado no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"degree_fee": fee.ToResponse()})
}

type RecordDegreeFeeRequest struct {
	MemberID    uint    `json:"member_id" binding:"required"`
	Degree      string  `json:"degree" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaymentDate string  `json:"payment_date"`
	SendEmail   bool    `json:"send_email"`
}

// @Summary Record Degree Fee
// @Description Records a degree rights payment and assigns its receipt number
// @Tags Degrees
// @Accept json
// @Produce json
// @Param request body RecordDegreeFeeRequest true "Fee Data"
// @Success 201 {object} models.DegreeFeeResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /degree_fees [post]
func (h *DegreeHandler) Create(c *gin.Context) {
	var req RecordDegreeFeeRequest
	if err := BindNestedOrFlat(c, "degree_fee", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fee, err := h.degreeService.RecordPayment(c.Request.Context(), services.RecordDegreeFeeInput{
		MemberID:    req.MemberID,
		Degree:      req.Degree,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		SendEmail:   req.SendEmail,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"degree_fee": fee.ToResponse()})
}

// @Summary Delete Degree Fee
// @Description Deletes a degree rights payment
// @Tags Degrees
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /degree_fees/{fee_id} [delete]
func (h *DegreeHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)
	if err := h.degreeService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Derecho de grado eliminado"})
}

// @Summary Download Degree Receipt
// @Description Generates and downloads the payment receipt PDF
// @Tags Degrees
// @Produce application/pdf
// @Param fee_id path int true "Fee ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /degree_fees/{fee_id}/receipt [get]
func (h *DegreeHandler) DownloadReceipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)

	buf, filename, err := h.degreeService.BuildReceipt(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// @Summary Degree WhatsApp Message
// @Description Returns the WhatsApp confirmation text for a degree fee
// @Tags Degrees
// @Produce json
// @Param fee_id path int true "Fee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /degree_fees/{fee_id}/whatsapp_message [get]
func (h *DegreeHandler) WhatsAppMessage(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("fee_id"), 10, 32)

	message, err := h.degreeService.WhatsAppMessage(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}
