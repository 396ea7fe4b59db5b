package service

import (
	"errors"

	"store_rating_api/internal/api/dto"
)

// ==================== 业务错误 ====================

// 哨兵错误，错误文案即对外响应的 message，由 controller 映射到 HTTP 状态码
var (
	// 认证 (401)
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// 权限 (403)
	ErrAdminSignupDisabled = errors.New("Admin signup is disabled.")
	ErrProfileAccess       = errors.New("Access denied. You can only view your own profile.")
	ErrProfileUpdate       = errors.New("Access denied. You can only update your own profile.")
	ErrPasswordUpdate      = errors.New("Access denied. You can only update your own password.")
	ErrRatingsAccess       = errors.New("Access denied. You can only view your own ratings.")
	ErrRatingDelete        = errors.New("Access denied. You can only delete your own ratings.")

	// 未找到 (404)
	ErrUserNotFound   = errors.New("User not found")
	ErrStoreNotFound  = errors.New("Store not found")
	ErrRatingNotFound = errors.New("Rating not found")
	ErrOwnerNotFound  = errors.New("Owner not found")

	// 业务规则冲突 (400)
	ErrEmailTaken      = errors.New("User with this email already exists")
	ErrStoreEmailTaken = errors.New("Store with this email already exists")
	ErrOwnerRole       = errors.New("Owner must have STORE_OWNER role")
	ErrSelfDelete      = errors.New("You cannot delete your own account")
	ErrSelfRoleChange  = errors.New("You cannot change your own role")
	ErrInvalidRole     = errors.New("Invalid role. Must be SYSTEM_ADMIN, NORMAL_USER, or STORE_OWNER")
	ErrWrongPassword   = errors.New("Current password is incorrect")
)

// ValidationError 字段级校验失败 (400)，任何持久化动作之前返回
type ValidationError struct {
	Errors []dto.FieldError
}

func (e *ValidationError) Error() string {
	return "Validation error"
}

// NewValidationError 便捷构造
func NewValidationError(errs ...dto.FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
