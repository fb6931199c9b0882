package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null;default:''"                  json:"description"`
	MentorID    string `gorm:"type:uuid;not null;index"                       json:"mentor_id"`
	BaseModel

	// 关联
	Mentor   *User     `gorm:"foreignKey:MentorID;references:UserID" json:"mentor,omitempty"`
	Chapters []Chapter `gorm:"foreignKey:CourseID"                   json:"chapters,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// OwnedBy 课程是否属于指定导师
func (c *Course) OwnedBy(mentorID string) bool {
	return c.MentorID == mentorID
}
