package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/internal/api/handler"
	"learnhub/backend/internal/api/middleware"
	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
	"learnhub/backend/pkg/jwt"
	"learnhub/backend/pkg/redis"
	"learnhub/backend/pkg/response"
)

// maxBodyBytes 请求体上限 1MB
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
// rdb 允许为 nil（无黑名单、无限流）
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login",
				middleware.RateLimit(rdb, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, logger),
				h.Auth.Login,
			)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块（管理员）
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RequireCapability(model.CapListUsers), h.User.ListUsers)
				users.PUT("/:id/approve-mentor", middleware.RequireCapability(model.CapApproveMentors), h.User.ApproveMentor)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.POST("", middleware.RequireCapability(model.CapManageCourses), h.Course.Create)
				courses.GET("/my", middleware.RequireCapability(model.CapManageCourses), h.Course.ListMine)
				courses.GET("/assigned", middleware.RequireCapability(model.CapViewAssignedCourses), h.Course.ListAssigned)
				courses.GET("/:id", h.Course.Get)
				courses.POST("/:id/chapters", middleware.RequireCapability(model.CapManageCourses), h.Course.AddChapter)
				courses.POST("/:id/assign", middleware.RequireCapability(model.CapAssignStudents), h.Course.AssignStudent)
				courses.GET("/:id/progress/export", middleware.RequireCapability(model.CapExportProgress), h.Export.ExportCourseProgress)
			}

			// 学习进度模块
			progress := authorized.Group("/progress")
			{
				progress.POST("/complete", middleware.RequireCapability(model.CapCompleteChapter), h.Progress.Complete)
				progress.GET("/my", middleware.RequireCapability(model.CapViewOwnProgress), h.Progress.ListMine)
				progress.GET("/course/:id", middleware.RequireCapability(model.CapViewOwnProgress), h.Progress.GetCourse)
			}

			// 证书模块
			authorized.GET("/certificates/:courseId", middleware.RequireCapability(model.CapRequestCertificate), h.Certificate.Get)
		}
	}

	return r, nil
}
