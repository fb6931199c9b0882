package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/backend/internal/model"
)

// ChapterRepository 章节数据访问接口
type ChapterRepository interface {
	Create(ctx context.Context, chapter *model.Chapter) error
	GetByID(ctx context.Context, id string) (*model.Chapter, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Chapter, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}

type chapterRepo struct {
	db *gorm.DB
}

// NewChapterRepo 创建 ChapterRepository 实例
func NewChapterRepo(db *gorm.DB) ChapterRepository {
	return &chapterRepo{db: db}
}

func (r *chapterRepo) Create(ctx context.Context, chapter *model.Chapter) error {
	return r.db.WithContext(ctx).Create(chapter).Error
}

func (r *chapterRepo) GetByID(ctx context.Context, id string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.db.WithContext(ctx).
		Where("chapter_id = ?", id).
		First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sequence_order ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *chapterRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Chapter{}).
		Where("course_id = ?", courseID).
		Count(&n).Error
	return n, err
}
