package dto

import (
	"regexp"
	"time"
)

// ==================== 请求 ====================

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
	Address  string `json:"address" binding:"required,max=400"`
	Role     string `json:"role" binding:"omitempty,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=16"`
}

// ==================== 响应 ====================

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User  *UserInfo `json:"user"`
	Token string    `json:"token"`
}

// UserInfo 对外展示的用户信息（不含密码）
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ==================== 密码策略 ====================

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// PasswordPolicyErrors 密码复杂度校验：至少一个大写字母和一个特殊字符
// 长度边界由 binding 标签负责，这里只补正则部分
func PasswordPolicyErrors(field, password string) []FieldError {
	var errs []FieldError
	if !upperRe.MatchString(password) {
		errs = append(errs, FieldError{
			Field:   field,
			Message: "Password must contain at least one uppercase letter",
		})
	}
	if !specialRe.MatchString(password) {
		errs = append(errs, FieldError{
			Field:   field,
			Message: "Password must contain at least one special character",
		})
	}
	return errs
}
