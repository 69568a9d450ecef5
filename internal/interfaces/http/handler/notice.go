package handler

import (
	"errors"
	"path/filepath"
	"strings"

	app "github.com/claims/backend/internal/application/notice"
	infra "github.com/claims/backend/internal/infrastructure/notice"
	"github.com/claims/backend/internal/interfaces/http/dto"
	"github.com/claims/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoticeHandler exposes notice generation and template management endpoints
type NoticeHandler struct {
	BaseHandler
	service *app.NoticeService
	logger  *zap.Logger
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(service *app.NoticeService, logger *zap.Logger) *NoticeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeHandler{service: service, logger: logger}
}

// RegisterRoutes registers the notice endpoints on the API group
func (h *NoticeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notices := rg.Group("/notices")
	notices.POST("/generate", h.GenerateNotice)
	notices.POST("/preview", h.PreviewNotice)
	notices.GET("/download/:file_name", h.DownloadNotice)

	templates := rg.Group("/templates")
	templates.GET("/:format", h.ListTemplates)
	templates.POST("/:format", h.UploadTemplate)
	templates.POST("/promote", h.PromoteTemplate)
}

// GenerateNotice renders the notice document for a claim
// POST /api/v1/notices/generate
func (h *NoticeHandler) GenerateNotice(c *gin.Context) {
	var req app.GenerateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}
	h.Success(c, resp)
}

// PreviewNotice renders a sample notice with fixture data
// POST /api/v1/notices/preview
func (h *NoticeHandler) PreviewNotice(c *gin.Context) {
	var req app.PreviewNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Preview(c.Request.Context(), req)
	if err != nil {
		h.handleNoticeError(c, err)
		return
	}
	h.Success(c, resp)
}

// DownloadNotice serves a generated document
// GET /api/v1/notices/download/:file_name
func (h *NoticeHandler) DownloadNotice(c *gin.Context) {
	fileName := c.Param("file_name")
	if fileName == "" || fileName != filepath.Base(fileName) || strings.HasPrefix(fileName, ".") {
		h.BadRequest(c, "Invalid file name")
		return
	}

	path, err := h.service.DocumentPath(fileName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.FileAttachment(path, fileName)
}

// ListTemplates lists the current and archived templates for a format
// GET /api/v1/templates/:format
func (h *NoticeHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context(), c.Param("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// UploadTemplate stores and validates a candidate template
// POST /api/v1/templates/:format
func (h *NoticeHandler) UploadTemplate(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A template file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	resp, err := h.service.UploadTemplate(c.Request.Context(), c.Param("format"), file.Filename, src)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// PromoteTemplate promotes an uploaded candidate to the current template
// POST /api/v1/templates/promote
func (h *NoticeHandler) PromoteTemplate(c *gin.Context) {
	var req app.PromoteTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.PromoteTemplate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// handleNoticeError adds render-failure mapping on top of the shared domain
// error handling
func (h *NoticeHandler) handleNoticeError(c *gin.Context, err error) {
	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		h.logger.Error("notice rendering failed",
			zap.String("code", renderErr.Code),
			zap.Error(err))
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeRenderFailed), dto.ErrCodeRenderFailed, renderErr.Message)
		return
	}
	h.HandleError(c, err)
}
