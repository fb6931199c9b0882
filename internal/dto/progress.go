package dto

// ── 学习进度模块 DTO ──

// CompleteChapterRequest 完成章节请求
// sequence_order 可选；若提供必须与章节实际顺序一致
type CompleteChapterRequest struct {
	CourseID      string `json:"course_id"      binding:"required,uuid"`
	ChapterID     string `json:"chapter_id"     binding:"required,uuid"`
	SequenceOrder *int   `json:"sequence_order" binding:"omitempty,min=1"`
}

// ProgressSummary 课程进度统计
type ProgressSummary struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Percentage int   `json:"percentage"`
}

// CompleteChapterResponse 完成章节响应
type CompleteChapterResponse struct {
	Message          string          `json:"message"`
	ChapterID        string          `json:"chapter_id"`
	AlreadyCompleted bool            `json:"already_completed"`
	Progress         ProgressSummary `json:"progress"`
}

// ChapterProgressResponse 单章进度
type ChapterProgressResponse struct {
	ChapterID     string `json:"chapter_id"`
	Title         string `json:"title"`
	SequenceOrder int    `json:"sequence_order"`
	State         string `json:"state"` // locked | unlocked | completed
}

// CourseProgressResponse 课程进度详情
type CourseProgressResponse struct {
	CourseID    string                    `json:"course_id"`
	CourseTitle string                    `json:"course_title"`
	Progress    ProgressSummary           `json:"progress"`
	Chapters    []ChapterProgressResponse `json:"chapters,omitempty"`
}
