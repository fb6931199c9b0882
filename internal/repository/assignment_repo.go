package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/internal/model"
)

// AssignmentRepository 选课数据访问接口
type AssignmentRepository interface {
	// Create 插入分配记录，已存在时不报错；返回是否新建
	Create(ctx context.Context, a *model.CourseAssignment) (bool, error)
	Exists(ctx context.Context, studentID, courseID string) (bool, error)
	// ListByCourse 课程下所有分配记录（预加载学员）
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseAssignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *model.CourseAssignment) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *assignmentRepo) Exists(ctx context.Context, studentID, courseID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseAssignment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *assignmentRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseAssignment, error) {
	var list []model.CourseAssignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("assigned_at ASC").
		Find(&list).Error
	return list, err
}
