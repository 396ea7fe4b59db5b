package dto

import (
	"time"

	"store_rating_api/internal/repository"
)

// ==================== 请求 ====================

// UpdateStoreRequest 更新店铺（店主或管理员）
type UpdateStoreRequest struct {
	Name    string `json:"name" binding:"omitempty,min=20,max=60"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"omitempty,max=400"`
}

// ==================== 响应 ====================

// StoreInfo 对外展示的店铺信息
type StoreInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	AvgRating   float64    `json:"avgRating"`
	RatingCount int64      `json:"ratingCount"`
	Owner       *UserBrief `json:"owner,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StoreListResponse 店铺列表
type StoreListResponse struct {
	Stores     []StoreInfo `json:"stores"`
	Pagination Pagination  `json:"pagination"`
}

// ==================== 转换 ====================

// NewStoreInfo 带统计的店铺响应
func NewStoreInfo(row *repository.StoreWithCounts) *StoreInfo {
	if row == nil {
		return nil
	}
	info := &StoreInfo{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Address:     row.Address,
		AvgRating:   row.AvgRating,
		RatingCount: row.RatingCount,
		CreatedAt:   row.CreatedAt,
	}
	if row.Owner != nil {
		info.Owner = &UserBrief{ID: row.Owner.ID, Name: row.Owner.Name}
	}
	return info
}
