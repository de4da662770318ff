package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/services"
)

type DashboardHandler struct {
	dashboardSvc *services.DashboardService
	exportSvc    *services.ExportService
}

func NewDashboardHandler(dashboardSvc *services.DashboardService, exportSvc *services.ExportService) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		exportSvc:    exportSvc,
	}
}

// @Summary Dashboard Overview
// @Description Returns the KPI cards for the current lodge year
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardOverview
// @Security BearerAuth
// @Router /dashboard/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardSvc.GetOverview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// @Summary Monthly Flow
// @Description Returns income and expenses per fiscal month, July first
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.MonthlyFlowPoint
// @Security BearerAuth
// @Router /dashboard/monthly_flow [get]
func (h *DashboardHandler) MonthlyFlow(c *gin.Context) {
	flow, err := h.dashboardSvc.GetMonthlyFlow(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flow)
}

// @Summary Income Distribution
// @Description Returns income by module; zero buckets are omitted
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.IncomeSlice
// @Security BearerAuth
// @Router /dashboard/income_distribution [get]
func (h *DashboardHandler) IncomeDistribution(c *gin.Context) {
	slices, err := h.dashboardSvc.GetIncomeDistribution(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slices)
}

// @Summary Expenses By Category
// @Description Returns expense totals per category, sorted descending
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.CategoryTotal
// @Security BearerAuth
// @Router /dashboard/expenses_by_category [get]
func (h *DashboardHandler) ExpensesByCategory(c *gin.Context) {
	categories, err := h.dashboardSvc.GetExpensesByCategory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary Today's Birthdays
// @Description Returns the members whose birthday is today
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /dashboard/birthdays [get]
func (h *DashboardHandler) Birthdays(c *gin.Context) {
	members, err := h.dashboardSvc.GetBirthdayMembers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, m := range members {
		responses = append(responses, m.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"members": responses})
}

// @Summary Export Dashboard
// @Description Generates and downloads the treasury report in various formats
// @Tags Dashboard
// @Produce application/octet-stream
// @Param format query string true "Report format (csv, xlsx, pdf)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /dashboard/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	format := c.Query("format")

	var data []byte
	var filename string
	var err error

	switch format {
	case "csv":
		data, filename, err = h.exportSvc.ExportCSV(c.Request.Context())
	case "xlsx":
		data, filename, err = h.exportSvc.ExportXLSX(c.Request.Context())
	case "pdf":
		data, filename, err = h.exportSvc.ExportPDF(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato inválido (csv, xlsx, pdf)"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("No se pudo generar el reporte %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
