package handler

import "learnhub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Course      *CourseHandler
	Progress    *ProgressHandler
	Certificate *CertificateHandler
	Export      *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		User:        NewUserHandler(svc.User),
		Course:      NewCourseHandler(svc.Course),
		Progress:    NewProgressHandler(svc.Progress),
		Certificate: NewCertificateHandler(svc.Certificate),
		Export:      NewExportHandler(svc.Export),
	}
}
