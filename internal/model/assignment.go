package model

import "time"

// CourseAssignment 学员选课（导师分配）表 — 对应 course_assignments
type CourseAssignment struct {
	AssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"                      json:"assignment_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_course_assignments_student_course" json:"student_id"`
	CourseID     string    `gorm:"type:uuid;not null;uniqueIndex:uq_course_assignments_student_course" json:"course_id"`
	AssignedBy   string    `gorm:"type:uuid;not null"                                                  json:"assigned_by"`
	AssignedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                  json:"assigned_at"`

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"  json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (CourseAssignment) TableName() string { return "course_assignments" }
