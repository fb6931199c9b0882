package dto

// ── 证书模块 DTO ──

// CertificateResponse 证书信息
type CertificateResponse struct {
	CertificateNumber string `json:"certificate_number"`
	Issuer            string `json:"issuer"`
	StudentID         string `json:"student_id"`
	StudentName       string `json:"student_name"`
	CourseID          string `json:"course_id"`
	CourseTitle       string `json:"course_title"`
	IssuedAt          string `json:"issued_at"`
}
