package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/service"
	"learnhub/backend/pkg/response"
)

// ProgressHandler 学习进度 HTTP 处理器
type ProgressHandler struct {
	progressSvc service.ProgressService
}

// NewProgressHandler 创建 ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// Complete 完成章节
// POST /api/v1/progress/complete
func (h *ProgressHandler) Complete(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteChapterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.progressSvc.CompleteChapter(c.Request.Context(), studentID, &req)
	if err != nil {
		handleProgressError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 我的所有课程进度
// GET /api/v1/progress/my
func (h *ProgressHandler) ListMine(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.progressSvc.ListMyProgress(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// GetCourse 单门课程进度与章节状态
// GET /api/v1/progress/course/:id
func (h *ProgressHandler) GetCourse(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.GetCourseProgress(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		handleProgressError(c, err)
		return
	}

	response.OK(c, result)
}

func handleProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPrerequisiteNotMet):
		response.BadRequest(c, 14001, "前置条件未满足：请先完成上一章节")
	case errors.Is(err, service.ErrNotEnrolled):
		response.Forbidden(c, 14002, "未被分配到该课程")
	case errors.Is(err, service.ErrChapterNotFound):
		response.NotFound(c, 14003, "章节不存在")
	case errors.Is(err, service.ErrSequenceOrderMismatch):
		response.BadRequest(c, 14004, "章节顺序与实际不符")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
