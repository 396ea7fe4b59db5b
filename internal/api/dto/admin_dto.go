package dto

import (
	"store_rating_api/internal/repository"
)

// ==================== 请求 ====================

// CreateUserRequest 管理员创建用户
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
	Address  string `json:"address" binding:"required,max=400"`
	Role     string `json:"role" binding:"omitempty,oneof=NORMAL_USER STORE_OWNER SYSTEM_ADMIN"`
}

// CreateStoreRequest 管理员创建店铺
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required,min=20,max=60"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"required,max=400"`
	OwnerID string `json:"ownerId" binding:"required"`
}

// UpdateRoleRequest 管理员调整用户角色
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AnalyticsQuery 分析查询参数，period 为回溯天数
type AnalyticsQuery struct {
	Period int `form:"period,default=30" binding:"omitempty,min=1,max=365"`
}

// ==================== 响应 ====================

// DashboardResponse 管理端仪表盘
type DashboardResponse struct {
	Statistics           *repository.Totals     `json:"statistics"`
	UserRoleDistribution []repository.RoleCount `json:"userRoleDistribution"`
	RecentUsers          []RecentUser           `json:"recentUsers"`
	RecentStores         []StoreInfo            `json:"recentStores"`
	TopRatedStores       []StoreInfo            `json:"topRatedStores"`
}

// AnalyticsResponse 趋势分析
type AnalyticsResponse struct {
	Period             string                        `json:"period"`
	UserGrowth         []repository.DayCount         `json:"userGrowth"`
	StoreGrowth        []repository.DayCount         `json:"storeGrowth"`
	RatingGrowth       []repository.DayCount         `json:"ratingGrowth"`
	TopRatedStores     []StoreInfo                   `json:"topRatedStores"`
	MostActiveUsers    []repository.ActiveUser       `json:"mostActiveUsers"`
	RatingDistribution []repository.RatingValueCount `json:"ratingDistribution"`
}
