package model

// Chapter 章节表 — 对应 chapters
// (course_id, sequence_order) 唯一，sequence_order 从 1 开始
type Chapter struct {
	ChapterID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"chapter_id"`
	CourseID      string `gorm:"type:uuid;not null;uniqueIndex:uq_chapters_course_sequence" json:"course_id"`
	Title         string `gorm:"type:varchar(200);not null"                                 json:"title"`
	Content       string `gorm:"type:text;not null;default:''"                              json:"content"`
	SequenceOrder int    `gorm:"not null;uniqueIndex:uq_chapters_course_sequence"           json:"sequence_order"`
	BaseModel
}

// TableName 指定表名
func (Chapter) TableName() string { return "chapters" }

// HasPrerequisite 第一章之外的章节都依赖前一章
func (c *Chapter) HasPrerequisite() bool {
	return c.SequenceOrder > 1
}
