package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/internal/model"
)

// CertificateRepository 证书数据访问接口
type CertificateRepository interface {
	GetByStudentCourse(ctx context.Context, studentID, courseID string) (*model.Certificate, error)
	// Create 插入证书，(student_id, course_id) 已存在时不插入；返回是否新建
	Create(ctx context.Context, cert *model.Certificate) (bool, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Certificate, error)
}

type certificateRepo struct {
	db *gorm.DB
}

// NewCertificateRepo 创建 CertificateRepository 实例
func NewCertificateRepo(db *gorm.DB) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) GetByStudentCourse(ctx context.Context, studentID, courseID string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Course").
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&cert).Error
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepo) Create(ctx context.Context, cert *model.Certificate) (bool, error) {
	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(cert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *certificateRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("issued_at ASC").
		Find(&certs).Error
	return certs, err
}
