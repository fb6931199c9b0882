package handler

import (
	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/service"
	"learnhub/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportCourseProgress 导出课程学习进度
// GET /api/v1/courses/:id/progress/export
func (h *ExportHandler) ExportCourseProgress(c *gin.Context) {
	mentorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseProgress(c.Request.Context(), mentorID, c.Param("id"))
	if err != nil {
		handleCourseError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}
