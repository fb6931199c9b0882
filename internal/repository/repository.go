package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Course      CourseRepository
	Chapter     ChapterRepository
	Assignment  AssignmentRepository
	Completion  CompletionRepository
	Certificate CertificateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Course:      NewCourseRepo(db),
		Chapter:     NewChapterRepo(db),
		Assignment:  NewAssignmentRepo(db),
		Completion:  NewCompletionRepo(db),
		Certificate: NewCertificateRepo(db),
	}
}
