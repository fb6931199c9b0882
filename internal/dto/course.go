package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
}

// AddChapterRequest 添加章节请求
type AddChapterRequest struct {
	Title         string `json:"title"          binding:"required,min=1,max=200"`
	Content       string `json:"content"`
	SequenceOrder int    `json:"sequence_order" binding:"required,min=1"`
}

// AssignStudentRequest 分配学员请求
type AssignStudentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	MentorID    string            `json:"mentor_id"`
	MentorName  string            `json:"mentor_name,omitempty"`
	Chapters    []ChapterResponse `json:"chapters,omitempty"`
	CreatedAt   string            `json:"created_at"`
}

// ChapterResponse 章节信息响应
type ChapterResponse struct {
	ID            string `json:"id"`
	CourseID      string `json:"course_id"`
	Title         string `json:"title"`
	Content       string `json:"content,omitempty"`
	SequenceOrder int    `json:"sequence_order"`
}

// AssignmentResponse 分配结果
type AssignmentResponse struct {
	CourseID        string `json:"course_id"`
	StudentID       string `json:"student_id"`
	AlreadyAssigned bool   `json:"already_assigned"`
}
