package model

import "time"

// ChapterCompletion 章节完成记录 — 对应 chapter_completions
// 只追加不修改；(student_id, chapter_id) 唯一
type ChapterCompletion struct {
	CompletionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                         json:"completion_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_chapter_completions_student_chapter" json:"student_id"`
	CourseID     string    `gorm:"type:uuid;not null;index"                                               json:"course_id"`
	ChapterID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_chapter_completions_student_chapter" json:"chapter_id"`
	CompletedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                     json:"completed_at"`
}

// TableName 指定表名
func (ChapterCompletion) TableName() string { return "chapter_completions" }
