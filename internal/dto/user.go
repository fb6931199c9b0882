package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role string `form:"role" binding:"omitempty,role"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
	CreatedAt  string `json:"created_at,omitempty"`
}
