package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/backend/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// GetWithChapters 查询课程并按 sequence_order 预加载章节
	GetWithChapters(ctx context.Context, id string) (*model.Course, error)
	ListByMentor(ctx context.Context, mentorID string) ([]model.Course, error)
	// ListByStudent 学员已分配的课程
	ListByStudent(ctx context.Context, studentID string) ([]model.Course, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetWithChapters(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence_order ASC")
		}).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByMentor(ctx context.Context, mentorID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Joins("JOIN course_assignments ca ON ca.course_id = courses.course_id").
		Where("ca.student_id = ?", studentID).
		Order("ca.assigned_at DESC").
		Find(&courses).Error
	return courses, err
}
