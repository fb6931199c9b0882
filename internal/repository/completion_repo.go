package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"learnhub/backend/internal/model"
)

// CompletionRepository 章节完成记录数据访问接口
type CompletionRepository interface {
	// ExistsBySequence 学员是否已完成课程中指定顺序的章节
	ExistsBySequence(ctx context.Context, studentID, courseID string, sequenceOrder int) (bool, error)
	// Upsert 插入完成记录，(student_id, chapter_id) 冲突视为成功；返回是否新建
	Upsert(ctx context.Context, c *model.ChapterCompletion) (bool, error)
	// CountByStudentCourse 学员在课程中已完成的不同章节数
	CountByStudentCourse(ctx context.Context, studentID, courseID string) (int64, error)
	ListChapterIDs(ctx context.Context, studentID, courseID string) ([]string, error)
	// CountByCourseGroupedByStudent 课程内每个学员的完成章节数
	CountByCourseGroupedByStudent(ctx context.Context, courseID string) (map[string]int64, error)
}

type completionRepo struct {
	db *gorm.DB
}

// NewCompletionRepo 创建 CompletionRepository 实例
func NewCompletionRepo(db *gorm.DB) CompletionRepository {
	return &completionRepo{db: db}
}

func (r *completionRepo) ExistsBySequence(ctx context.Context, studentID, courseID string, sequenceOrder int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ChapterCompletion{}).
		Joins("JOIN chapters ch ON ch.chapter_id = chapter_completions.chapter_id").
		Where("chapter_completions.student_id = ? AND chapter_completions.course_id = ? AND ch.sequence_order = ?",
			studentID, courseID, sequenceOrder).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *completionRepo) Upsert(ctx context.Context, c *model.ChapterCompletion) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "chapter_id"}},
			DoNothing: true,
		}).
		Create(c)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *completionRepo) CountByStudentCourse(ctx context.Context, studentID, courseID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ChapterCompletion{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Distinct("chapter_id").
		Count(&n).Error
	return n, err
}

func (r *completionRepo) ListChapterIDs(ctx context.Context, studentID, courseID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ChapterCompletion{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Pluck("chapter_id", &ids).Error
	return ids, err
}

func (r *completionRepo) CountByCourseGroupedByStudent(ctx context.Context, courseID string) (map[string]int64, error) {
	var rows []struct {
		StudentID string
		Completed int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ChapterCompletion{}).
		Select("student_id, COUNT(DISTINCT chapter_id) AS completed").
		Where("course_id = ?", courseID).
		Group("student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.StudentID] = row.Completed
	}
	return result, nil
}
