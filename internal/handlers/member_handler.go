package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/repository"
	"github.com/jvintimilla/logia-api/internal/services"
	"github.com/jvintimilla/logia-api/internal/storage"
)

type MemberHandler struct {
	memberService *services.MemberService
	reportService *services.ReportService
	storage       *storage.LocalStorage
}

func NewMemberHandler(memberService *services.MemberService, reportService *services.ReportService, store *storage.LocalStorage) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		reportService: reportService,
		storage:       store,
	}
}

// @Summary List Members
// @Description Get a paginated list of members
// @Tags Members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status (activo/inactivo)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /members [get]
func (h *MemberHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	if status := c.Query("status"); status != "" {
		query.Filters["status"] = status
	}

	members, total, err := h.memberService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, m := range members {
		responses = append(responses, m.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"members": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Member
// @Description Get a member by ID
// @Tags Members
// @Produce json
// @Param member_id path int true "Member ID"
// @Success 200 {object} models.MemberResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /members/{member_id} [get]
func (h *MemberHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	member, err := h.memberService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Miembro no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member.ToResponse()})
}

// @Summary Create Member
// @Description Create a new member
// @Tags Members
// @Accept json
// @Produce json
// @Param request body models.Member true "Member Data"
// @Success 201 {object} models.MemberResponse
// @Security BearerAuth
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var member models.Member
	if err := BindNestedOrFlat(c, "member", &member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if member.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre completo es requerido"})
		return
	}

	if err := h.memberService.Create(c.Request.Context(), &member); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member.ToResponse()})
}

// @Summary Update Member
// @Description Update an existing member
// @Tags Members
// @Accept json
// @Produce json
// @Param member_id path int true "Member ID"
// @Param request body models.Member true "Member Data"
// @Success 200 {object} models.MemberResponse
// @Security BearerAuth
// @Router /members/{member_id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)

	member, err := h.memberService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Miembro no encontrado"})
		return
	}

	var input models.Member
	if err := BindNestedOrFlat(c, "member", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member.FullName = input.FullName
	member.Degree = input.Degree
	member.Phone = input.Phone
	member.Email = input.Email
	member.BirthDate = input.BirthDate
	member.InitiatedAt = input.InitiatedAt
	member.Note = input.Note

	if err := h.memberService.Update(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member.ToResponse()})
}

// @Summary Delete Member
// @Description Delete a member and their payment history
// @Tags Members
// @Produce json
// @Param member_id path int true "Member ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /members/{member_id} [delete]
func (h *MemberHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	if err := h.memberService.Delete(c.Request.Context(), uint(id)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Miembro eliminado"})
}

// @Summary Toggle Member Status
// @Description Toggles a member between activo and inactivo
// @Tags Members
// @Produce json
// @Param member_id path int true "Member ID"
// @Success 200 {object} models.MemberResponse
// @Security BearerAuth
// @Router /members/{member_id}/toggle_status [put]
func (h *MemberHandler) ToggleStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	member, err := h.memberService.ToggleStatus(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member.ToResponse()})
}

// @Summary Upload Member Photo
// @Description Uploads a member photo; a 128x128 thumbnail is generated
// @Tags Members
// @Accept multipart/form-data
// @Produce json
// @Param member_id path int true "Member ID"
// @Param photo formData file true "Photo (JPG/PNG)"
// @Success 200 {object} models.MemberResponse
// @Security BearerAuth
// @Router /members/{member_id}/photo [post]
func (h *MemberHandler) UploadPhoto(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo de foto es requerido"})
		return
	}
	defer file.Close()

	member, err := h.memberService.SetPhoto(c.Request.Context(), uint(id), file, header)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member.ToResponse()})
}

// @Summary Get Member Photo
// @Description Serves the member photo, or its thumbnail with ?thumb=true
// @Tags Members
// @Produce image/jpeg
// @Param member_id path int true "Member ID"
// @Param thumb query bool false "Serve the thumbnail"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /members/{member_id}/photo [get]
func (h *MemberHandler) Photo(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)
	member, err := h.memberService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Miembro no encontrado"})
		return
	}

	path := member.PhotoPath
	if c.Query("thumb") == "true" && member.ThumbPath != nil {
		path = member.ThumbPath
	}

	if path == nil || !h.storage.Exists(*path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Foto no encontrada"})
		return
	}

	c.File(h.storage.GetFullPath(*path))
}

// @Summary Member Statement PDF
// @Description Generates the member's statement of account for the current lodge year
// @Tags Members
// @Produce application/pdf
// @Param member_id path int true "Member ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /members/{member_id}/statement_pdf [get]
func (h *MemberHandler) StatementPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("member_id"), 10, 32)

	buf, err := h.reportService.GenerateMemberStatementPDF(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=estado_cuenta_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
