package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// role 仅允许 student / mentor，管理员不可自助注册
type RegisterRequest struct {
	Email    string `json:"email"     binding:"required,email,max=255"`
	Password string `json:"password"  binding:"required,min=8,max=64"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Role     string `json:"role"      binding:"required,role"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}
