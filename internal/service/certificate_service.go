package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/internal/dto"
	"learnhub/backend/internal/model"
	"learnhub/backend/internal/repository"
	pkgerrors "learnhub/backend/pkg/errors"
)

// CertificateService 证书业务接口
//
// 证书只在课程全部完成后颁发；完成记录不可删除，
// 因此一旦颁发，之后的请求总是返回同一张证书。
type CertificateService interface {
	Issue(ctx context.Context, studentID, courseID string) (*dto.CertificateResponse, error)
}

type certificateService struct {
	cfg      *config.CertificateConfig
	repo     *repository.Repository
	progress ProgressService
	logger   *zap.Logger
	now      func() time.Time
}

// NewCertificateService 创建 CertificateService 实例
func NewCertificateService(
	cfg *config.CertificateConfig,
	repo *repository.Repository,
	progress ProgressService,
	logger *zap.Logger,
) CertificateService {
	return &certificateService{
		cfg:      cfg,
		repo:     repo,
		progress: progress,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *certificateService) Issue(ctx context.Context, studentID, courseID string) (*dto.CertificateResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	enrolled, err := s.repo.Assignment.Exists(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	// 已颁发则直接返回
	if cert, err := s.repo.Certificate.GetByStudentCourse(ctx, studentID, courseID); err == nil {
		return s.toCertificateResponse(cert), nil
	} else if !pkgerrors.IsNotFound(err) {
		s.logger.Error("查询证书失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	if err := s.progress.CheckCertificateEligibility(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	issuedAt := s.now()
	created, err := s.repo.Certificate.Create(ctx, &model.Certificate{
		CertificateNumber: s.newCertificateNumber(issuedAt),
		StudentID:         studentID,
		CourseID:          courseID,
		IssuedAt:          issuedAt,
	})
	if err != nil {
		s.logger.Error("颁发证书失败",
			zap.String("student_id", studentID),
			zap.String("course_id", courseID),
			zap.Error(err),
		)
		return nil, err
	}
	if created {
		s.logger.Info("证书已颁发", zap.String("student_id", studentID), zap.String("course_id", courseID))
	}

	// 重新读取：并发请求时以先写入的证书为准
	cert, err := s.repo.Certificate.GetByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		s.logger.Error("查询证书失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return s.toCertificateResponse(cert), nil
}

// newCertificateNumber 格式：<前缀>-<YYYYMMDD>-<8 位十六进制>
func (s *certificateService) newCertificateNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", s.cfg.NumberPrefix, at.UTC().Format("20060102"), suffix)
}

func (s *certificateService) toCertificateResponse(cert *model.Certificate) *dto.CertificateResponse {
	resp := &dto.CertificateResponse{
		CertificateNumber: cert.CertificateNumber,
		Issuer:            s.cfg.Issuer,
		StudentID:         cert.StudentID,
		CourseID:          cert.CourseID,
		IssuedAt:          cert.IssuedAt.Format(time.RFC3339),
	}
	if cert.Student != nil {
		resp.StudentName = cert.Student.FullName
	}
	if cert.Course != nil {
		resp.CourseTitle = cert.Course.Title
	}
	return resp
}
