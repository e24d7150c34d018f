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
	"github.com/gmassist/api/internal/web"
	"go.uber.org/zap"
)

// PageHandler serves the single-page form
type PageHandler struct {
	svc    *generator.Service
	logger *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(svc *generator.Service, logger *zap.Logger) *PageHandler {
	return &PageHandler{svc: svc, logger: logger}
}

// Index renders the idle form
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, web.NewPage(h.svc.Router().Models()))
}

// Submit handles one press of the generate button and re-renders the page
func (h *PageHandler) Submit(c *gin.Context) {
	page := web.NewPage(h.svc.Router().Models())
	page.Theme = c.PostForm("theme")
	if selected := c.PostForm("content_type"); selected != "" {
		page.Selected = selected
	}

	values, err := settings.ParseForm(c.PostForm(settings.Temperature.Name), c.PostForm(settings.MaxTokens.Name))
	if err != nil {
		page.Warn(err.Error())
		c.HTML(http.StatusBadRequest, web.IndexTemplate, page)
		return
	}
	page.Values = values

	result, err := h.svc.Generate(c.Request.Context(), models.GenerationRequest{
		ContentType: page.Selected,
		Theme:       page.Theme,
		Temperature: values.Temperature,
		MaxTokens:   values.MaxTokens,
		RequestID:   middleware.GetRequestID(c),
	})

	var failed *generator.GenerationFailedError
	switch {
	case err == nil:
		page.Succeed(result)
		c.HTML(http.StatusOK, web.IndexTemplate, page)
	case errors.Is(err, generator.ErrEmptyTheme):
		page.Warn(web.EmptyThemeText)
		c.HTML(http.StatusOK, web.IndexTemplate, page)
	case errors.As(err, &failed):
		page.Fail(failed.Error())
		c.HTML(http.StatusOK, web.IndexTemplate, page)
	case errors.Is(err, content.ErrUnknownType), errors.Is(err, generator.ErrInvalidSettings):
		page.Warn(err.Error())
		c.HTML(http.StatusBadRequest, web.IndexTemplate, page)
	default:
		h.logger.Error("unexpected generation error", zap.Error(err))
		page.Fail(err.Error())
		c.HTML(http.StatusInternalServerError, web.IndexTemplate, page)
	}
}
