package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnhub/backend/internal/model"
	"learnhub/backend/pkg/jwt"
	"learnhub/backend/pkg/redis"
	"learnhub/backend/pkg/response"
)

// 上下文键
const (
	ContextUserID   = "user_id"
	ContextRole     = "role"
	ContextTokenJTI = "token_jti"
	ContextTokenExp = "token_exp"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// rdb 为 nil 时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, response.CodeUnauthorized, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, response.CodeUnauthorized, "Token 类型无效")
			c.Abort()
			return
		}

		role, err := model.ParseRole(claims.Role)
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "Token 角色无效")
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 出错时降级放行
				logger.Warn("检查 Token 黑名单失败", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, response.CodeUnauthorized, "Token 已注销")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, role)
		c.Set(ContextTokenJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireCapability 能力鉴权中间件
// 检查当前用户角色是否具备指定能力
func RequireCapability(capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextRole)
		if !exists {
			response.Unauthorized(c, response.CodeUnauthorized, "未认证")
			c.Abort()
			return
		}

		role, ok := v.(model.Role)
		if !ok || !role.Can(capability) {
			response.Forbidden(c, response.CodeForbidden, "无权限访问")
			c.Abort()
			return
		}

		c.Next()
	}
}
