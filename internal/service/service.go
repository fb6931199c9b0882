package service

import (
	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/internal/repository"
	"learnhub/backend/pkg/jwt"
	"learnhub/backend/pkg/mail"
	"learnhub/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	User        UserService
	Course      CourseService
	Progress    ProgressService
	Certificate CertificateService
	Export      ExportService
}

// NewService 创建 Service 聚合
// rdb 允许为 nil（Redis 不可用时降级，登出不再拉黑 Token）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mailer mail.Sender,
	logger *zap.Logger,
) *Service {
	var blacklist TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	progress := NewProgressService(repo, logger)

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, blacklist, logger),
		User:        NewUserService(cfg, repo, mailer, logger),
		Course:      NewCourseService(repo, logger),
		Progress:    progress,
		Certificate: NewCertificateService(&cfg.Certificate, repo, progress, logger),
		Export:      NewExportService(repo, logger),
	}
}
