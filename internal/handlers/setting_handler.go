package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jvintimilla/logia-api/internal/models"
	"github.com/jvintimilla/logia-api/internal/services"
)

type SettingHandler struct {
	settingService *services.SettingService
}

func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// @Summary Get Settings
// @Description Returns the lodge configuration
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Setting
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingHandler) Show(c *gin.Context) {
	settings, err := h.settingService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Update Settings
// @Description Updates the lodge configuration
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body models.Setting true "Settings Data"
// @Success 200 {object} models.Setting
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var input models.Setting
	if err := BindNestedOrFlat(c, "settings", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingService.Update(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Upload Branding Image
// @Description Uploads the lodge logo or a signer's signature image
// @Tags Settings
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Image kind (logo, treasurer_signature, venerable_signature)"
// @Param image formData file true "Image (JPG/PNG)"
// @Success 200 {object} models.Setting
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /settings/images/{kind} [post]
func (h *SettingHandler) UploadImage(c *gin.Context) {
	kind := c.Param("kind")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Archivo de imagen es requerido"})
		return
	}
	defer file.Close()

	settings, err := h.settingService.UploadImage(c.Request.Context(), kind, file, header)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
