package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/service"
	"learnhub/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create 创建课程
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	mentorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, mentorID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// AddChapter 添加章节
// POST /api/v1/courses/:id/chapters
func (h *CourseHandler) AddChapter(c *gin.Context) {
	mentorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddChapterRequest
	if !bindJSON(c, &req) {
		return
	}

	chapter, err := h.courseSvc.AddChapter(c.Request.Context(), c.Param("id"), &req, mentorID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, chapter)
}

// ListMine 导师自己的课程
// GET /api/v1/courses/my
func (h *CourseHandler) ListMine(c *gin.Context) {
	mentorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListMine(c.Request.Context(), mentorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, courses)
}

// AssignStudent 分配学员
// POST /api/v1/courses/:id/assign
func (h *CourseHandler) AssignStudent(c *gin.Context) {
	mentorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.courseSvc.AssignStudent(c.Request.Context(), c.Param("id"), &req, mentorID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// ListAssigned 学员已分配的课程
// GET /api/v1/courses/assigned
func (h *CourseHandler) ListAssigned(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListAssigned(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, courses)
}

// Get 课程详情（含章节）
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseSvc.GetWithChapters(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// handleCourseError 课程模块错误映射，导出接口共用
func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Forbidden(c, 13002, "只有课程创建者可以操作该课程")
	case errors.Is(err, service.ErrDuplicateSequenceOrder):
		response.Conflict(c, 13003, "该课程已存在相同顺序的章节")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13004, "学员不存在")
	case errors.Is(err, service.ErrAssigneeNotStudent):
		response.BadRequest(c, 13005, "只能为学员分配课程")
	default:
		response.InternalError(c)
	}
}
