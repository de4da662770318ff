package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// @Summary List Expenses
// @Description Get a paginated list of expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param category query string false "Filter by category"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	if category := c.Query("category"); category != "" {
		query.Filters["category"] = category
	}

	expenses, total, err := h.expenseService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, e := range expenses {
		responses = append(responses, e.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"expenses": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Expense
// @Description Get an expense by ID
// @Tags Expenses
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Success 200 {object} models.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{expense_id} [get]
func (h *ExpenseHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	expense, err := h.expenseService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gasto no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

type ExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	ExpenseDate string  `json:"expense_date"`
}

// @Summary Create Expense
// @Description Records a treasury expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense Data"
// @Success 201 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense := &models.Expense{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: time.Now(),
	}
	if req.ExpenseDate != "" {
		if d, err := time.Parse("2006-01-02", req.ExpenseDate); err == nil {
			expense.ExpenseDate = d
		}
	}

	if err := h.expenseService.Create(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense.ToResponse()})
}

// @Summary Update Expense
// @Description Update an existing expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense Data"
// @Success 200 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expense_id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)

	expense, err := h.expenseService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gasto no encontrado"})
		return
	}

	var req ExpenseRequest
	if err := BindNestedOrFlat(c, "expense", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense.Description = req.Description
	expense.Category = req.Category
	expense.Amount = req.Amount
	if req.ExpenseDate != "" {
		if d, err := time.Parse("2006-01-02", req.ExpenseDate); err == nil {
			expense.ExpenseDate = d
		}
	}

	if err := h.expenseService.Update(c.Request.Context(), expense); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

// @Summary Delete Expense
// @Description Deletes an expense and its voucher file
// @Tags Expenses
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{expense_id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)
	if err := h.expenseService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Gasto eliminado"})
}

// @Summary Upload Expense Voucher
// @Description Attaches a voucher file to an expense, replacing any previous one
// @Tags Expenses
// @Accept multipart/form-data
// @Produce json
// @Param expense_id path int true "Expense ID"
// @Param voucher formData file true "Voucher (PDF/JPG/PNG)"
// @Success 200 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{expense_id}/voucher [post]
func (h *ExpenseHandler) UploadVoucher(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)

	file, header, err := c.Request.FormFile("voucher")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo de comprobante es requerido"})
		return
	}
	defer file.Close()

	expense, err := h.expenseService.AttachVoucher(c.Request.Context(), uint(id), file, header)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense.ToResponse()})
}

// @Summary Download Expense Voucher
// @Description Serves the voucher file attached to an expense
// @Tags Expenses
// @Produce application/octet-stream
// @Param expense_id path int true "Expense ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{expense_id}/voucher [get]
func (h *ExpenseHandler) DownloadVoucher(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("expense_id"), 10, 32)

	fullPath, err := h.expenseService.VoucherPath(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comprobante no encontrado"})
		return
	}

	c.File(fullPath)
}
