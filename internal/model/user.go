package model

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null"                      json:"role"`
	IsApproved   bool   `gorm:"not null;default:false"                         json:"is_approved"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// CanLogin 导师需经管理员审批后才能登录
func (u *User) CanLogin() bool {
	return !u.Role.RequiresApproval() || u.IsApproved
}
