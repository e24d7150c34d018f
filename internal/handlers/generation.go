package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmassist/api/internal/content"
	"github.com/gmassist/api/internal/generator"
	"github.com/gmassist/api/internal/middleware"
	"github.com/gmassist/api/internal/models"
	"github.com/gmassist/api/internal/settings"
	"go.uber.org/zap"
)

// GenerationHandler serves the JSON generation API
type GenerationHandler struct {
	svc    *generator.Service
	logger *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(svc *generator.Service, logger *zap.Logger) *GenerationHandler {
	return &GenerationHandler{svc: svc, logger: logger}
}

// GenerateRequest is the request body for a generation. Omitted sliders take their defaults.
type GenerateRequest struct {
	ContentType string   `json:"content_type" example:"Quest"`
	Theme       string   `json:"theme" example:"Ancient Ruins"`
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	MaxTokens   *int     `json:"max_tokens,omitempty" example:"250"`
}

// SettingsResponse describes the two generator sliders
type SettingsResponse struct {
	Temperature settings.FloatSlider `json:"temperature"`
	MaxTokens   settings.IntSlider   `json:"max_tokens"`
}

// Generate runs one generation
// @Summary Generate content
// @Description Builds the prompt for the content type and theme, then makes one inference call
// @Tags generation
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generation request"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	values := settings.Defaults()
	if req.Temperature != nil {
		values.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		values.MaxTokens = *req.MaxTokens
	}

	result, err := h.svc.Generate(c.Request.Context(), models.GenerationRequest{
		ContentType: req.ContentType,
		Theme:       req.Theme,
		Temperature: values.Temperature,
		MaxTokens:   values.MaxTokens,
		RequestID:   middleware.GetRequestID(c),
	})
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondGenerationError(c *gin.Context, err error) {
	var failed *generator.GenerationFailedError
	switch {
	case errors.Is(err, generator.ErrEmptyTheme):
		middleware.RespondError(c, http.StatusBadRequest, middleware.ErrCodeEmptyTheme, err.Error())
	case errors.Is(err, generator.ErrInvalidSettings):
		middleware.RespondError(c, http.StatusBadRequest, middleware.ErrCodeInvalidSettings, err.Error())
	case errors.Is(err, content.ErrUnknownType):
		middleware.RespondError(c, http.StatusBadRequest, middleware.ErrCodeUnknownContentType, err.Error())
	case errors.As(err, &failed):
		middleware.GenerationFailed(c, failed.Error(), failed.Model)
	default:
		middleware.InternalError(c, err.Error())
	}
}

// ListContentTypes returns every content type with its tier and model
// @Summary List content types
// @Tags generation
// @Produce json
// @Success 200 {array} models.ContentTypeInfo
// @Router /content-types [get]
func (h *GenerationHandler) ListContentTypes(c *gin.Context) {
	router := h.svc.Router()
	types := content.Types()
	out := make([]models.ContentTypeInfo, 0, len(types))
	for _, t := range types {
		rule, err := content.RuleFor(t)
		if err != nil {
			middleware.InternalError(c, err.Error())
			return
		}
		out = append(out, models.ContentTypeInfo{
			Name:  string(t),
			Tier:  string(rule.Tier),
			Model: router.Models().For(rule.Tier),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetSettings returns the slider bounds and defaults
// @Summary Generator settings
// @Tags generation
// @Produce json
// @Success 200 {object} SettingsResponse
// @Router /settings [get]
func (h *GenerationHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsResponse{
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
}
