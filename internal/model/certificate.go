package model

import "time"

// Certificate 已颁发证书 — 对应 certificates
// 每个学员每门课程最多一张
type Certificate struct {
	CertificateID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"certificate_id"`
	CertificateNumber string    `gorm:"type:varchar(64);not null;uniqueIndex"                        json:"certificate_number"`
	StudentID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_certificates_student_course" json:"student_id"`
	CourseID          string    `gorm:"type:uuid;not null;uniqueIndex:uq_certificates_student_course" json:"course_id"`
	IssuedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"issued_at"`

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"  json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Certificate) TableName() string { return "certificates" }
