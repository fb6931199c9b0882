package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/service"
	"learnhub/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器（管理员）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 用户列表
// GET /api/v1/users?role=mentor&page=1&page_size=20
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParam(c, err)
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// ApproveMentor 审批导师
// PUT /api/v1/users/:id/approve-mentor
func (h *UserHandler) ApproveMentor(c *gin.Context) {
	user, err := h.userSvc.ApproveMentor(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		case errors.Is(err, service.ErrUserNotMentor):
			response.BadRequest(c, 12002, "该用户不是导师")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}
