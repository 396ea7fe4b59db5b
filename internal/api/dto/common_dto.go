package dto

// ==================== 通用结构 ====================

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Pagination 分页信息（响应）
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PageQuery 分页/排序查询参数
// sortBy 白名单由各仓库单独收窄，这里只挡明显非法值
type PageQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy,default=createdAt" binding:"omitempty,oneof=name email address createdAt avgRating rating"`
	SortOrder string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// SearchQuery 列表搜索参数
type SearchQuery struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Role   string `form:"role" binding:"omitempty,oneof=SYSTEM_ADMIN STORE_OWNER NORMAL_USER"`
}
