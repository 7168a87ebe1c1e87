package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// CategoryView is a category label with its presentation color
type CategoryView struct {
	Name  string
	Color string
}

// PageData is rendered into the index page
type PageData struct {
	Categories     []CategoryView
	MaxUploadBytes int64
}

// PageHandler serves the single classification page
type PageHandler struct {
	data   PageData
	logger *zap.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(maxUploadBytes int64, logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	categories := make([]CategoryView, 0, len(entity.KnownCategories()))
	for _, name := range entity.KnownCategories() {
		categories = append(categories, CategoryView{Name: name, Color: entity.CategoryColor(name)})
	}
	return &PageHandler{
		data: PageData{
			Categories:     categories,
			MaxUploadBytes: maxUploadBytes,
		},
		logger: logger,
	}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pageTemplate.Execute(c.Writer, h.data); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
	}
}
