package dto

import (
	"time"

	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// ==================== 请求 ====================

// UpdateProfileRequest 更新个人资料
type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"omitempty,min=2,max=60"`
	Address string `json:"address" binding:"omitempty,max=400"`
}

// ==================== 响应 ====================

// UserDetail 用户详情（含关联统计）
type UserDetail struct {
	UserInfo
	OwnedStoreCount int64 `json:"ownedStoreCount"`
	RatingCount     int64 `json:"ratingCount"`
}

// UserListResponse 用户列表
type UserListResponse struct {
	Users      []UserDetail `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

// ==================== 转换 ====================

// NewUserInfo User -> UserInfo
func NewUserInfo(u *model.User) *UserInfo {
	if u == nil {
		return nil
	}
	return &UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserDetail 带统计的用户详情
func NewUserDetail(row *repository.UserWithCounts) *UserDetail {
	if row == nil {
		return nil
	}
	return &UserDetail{
		UserInfo:        *NewUserInfo(&row.User),
		OwnedStoreCount: row.OwnedStoreCount,
		RatingCount:     row.RatingCount,
	}
}

// UserBrief 嵌在评分/店铺里的作者摘要
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecentUser 仪表盘"最近注册"条目
type RecentUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
