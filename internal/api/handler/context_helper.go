package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/backend/internal/api/middleware"
	"learnhub/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// MustGetTokenInfo 提取当前 Access Token 的 jti 与过期时间（登出用）
func MustGetTokenInfo(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.ContextTokenJTI)
	exp := c.GetTime(middleware.ContextTokenExp)
	if jti == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", time.Time{}, false
	}
	return jti, exp, true
}

// bindJSON 绑定 JSON 请求体，失败时写入 400（超出大小限制时 413）
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
			return false
		}
		response.InvalidParam(c, err)
		return false
	}
	return true
}
