package dto

import (
	"time"

	"store_rating_api/internal/model"
)

// ==================== 请求 ====================

// SubmitRatingRequest 提交评分（新建或覆盖）
// 作者身份永远取自认证上下文，请求体里没有 userId
type SubmitRatingRequest struct {
	StoreID string  `json:"storeId" binding:"required"`
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=500"`
}

// ==================== 响应 ====================

// RatingInfo 评分记录（含作者/店铺摘要，供前端直接展示）
type RatingInfo struct {
	ID        string      `json:"id"`
	Rating    int         `json:"rating"`
	Comment   *string     `json:"comment"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	User      *UserBrief  `json:"user,omitempty"`
	Store     *StoreBrief `json:"store,omitempty"`
}

// StoreBrief 嵌在评分里的店铺摘要
type StoreBrief struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	AvgRating float64 `json:"avgRating,omitempty"`
}

// RatingListResponse 店铺/用户维度的评分列表
type RatingListResponse struct {
	Store      *StoreBrief  `json:"store,omitempty"`
	Ratings    []RatingInfo `json:"ratings"`
	Pagination Pagination   `json:"pagination"`
}

// SubmitRatingResponse 提交评分响应
type SubmitRatingResponse struct {
	Rating  *RatingInfo `json:"rating"`
	Comment *string     `json:"comment"`
}

// ==================== 转换 ====================

// NewRatingInfo Rating -> RatingInfo，按已预加载的关联填充摘要
func NewRatingInfo(r *model.Rating) *RatingInfo {
	if r == nil {
		return nil
	}
	info := &RatingInfo{
		ID:        r.ID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.User != nil {
		info.User = &UserBrief{ID: r.User.ID, Name: r.User.Name}
	}
	if r.Store != nil {
		info.Store = &StoreBrief{
			ID:        r.Store.ID,
			Name:      r.Store.Name,
			Address:   r.Store.Address,
			AvgRating: r.Store.AvgRating,
		}
	}
	return info
}

// NewRatingInfos 批量转换
func NewRatingInfos(ratings []model.Rating) []RatingInfo {
	infos := make([]RatingInfo, 0, len(ratings))
	for i := range ratings {
		infos = append(infos, *NewRatingInfo(&ratings[i]))
	}
	return infos
}
