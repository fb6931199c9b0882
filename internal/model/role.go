package model

import "fmt"

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// Capability 角色能力，路由鉴权按能力而非角色名判断
type Capability int

const (
	CapCompleteChapter Capability = iota + 1
	CapViewOwnProgress
	CapRequestCertificate
	CapViewAssignedCourses
	CapManageCourses
	CapAssignStudents
	CapExportProgress
	CapListUsers
	CapApproveMentors
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapCompleteChapter:     true,
		CapViewOwnProgress:     true,
		CapRequestCertificate:  true,
		CapViewAssignedCourses: true,
	},
	RoleMentor: {
		CapManageCourses:  true,
		CapAssignStudents: true,
		CapExportProgress: true,
	},
	RoleAdmin: {
		CapListUsers:      true,
		CapApproveMentors: true,
	},
}

// ParseRole 将字符串解析为角色，未知角色返回错误
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("未知角色: %q", s)
	}
	return r, nil
}

// Valid 是否为已知角色
func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Can 角色是否具备指定能力
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

// SelfRegistrable 是否允许自助注册（管理员只能由运维创建）
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleMentor
}

// RequiresApproval 登录前是否需要管理员审批
func (r Role) RequiresApproval() bool {
	return r == RoleMentor
}

func (r Role) String() string { return string(r) }
