package repository

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"store_rating_api/internal/model"
)

// ==================== StatsRepository 平台统计 ====================

// Totals 平台总量
type Totals struct {
	Users         int64   `json:"totalUsers"`
	Stores        int64   `json:"totalStores"`
	Ratings       int64   `json:"totalRatings"`
	AverageRating float64 `json:"averageRating"` // 全平台评分均值，两位小数
}

// RoleCount 角色分布
type RoleCount struct {
	Role  model.Role `json:"role"`
	Count int64      `json:"count"`
}

// DayCount 按天增量
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// RatingValueCount 评分值分布 (1-5)
type RatingValueCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

// ActiveUser 活跃用户（按评分数）
type ActiveUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RatingCount int64  `json:"ratingCount"`
}

// StatsRepository 管理端仪表盘/分析的聚合查询
type StatsRepository interface {
	Totals(ctx context.Context) (*Totals, error)
	RoleDistribution(ctx context.Context) ([]RoleCount, error)
	RecentUsers(ctx context.Context, limit int) ([]model.User, error)
	RecentStores(ctx context.Context, limit int) ([]model.Store, error)
	TopRatedStores(ctx context.Context, limit int) ([]StoreWithCounts, error)
	MostActiveUsers(ctx context.Context, limit int) ([]ActiveUser, error)
	UserGrowth(ctx context.Context, since time.Time) ([]DayCount, error)
	StoreGrowth(ctx context.Context, since time.Time) ([]DayCount, error)
	RatingGrowth(ctx context.Context, since time.Time) ([]DayCount, error)
	RatingDistribution(ctx context.Context) ([]RatingValueCount, error)
}

// ==================== 实现 ====================

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Totals(ctx context.Context) (*Totals, error) {
	var t Totals
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Count(&t.Users).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Store{}).Count(&t.Stores).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Rating{}).Count(&t.Ratings).Error; err != nil {
		return nil, err
	}
	var avg float64
	if err := db.Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	t.AverageRating = math.Round(avg*100) / 100
	return &t, nil
}

func (r *statsRepository) RoleDistribution(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) RecentUsers(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *statsRepository) RecentStores(ctx context.Context, limit int) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Find(&stores).Error
	return stores, err
}

func (r *statsRepository) TopRatedStores(ctx context.Context, limit int) ([]StoreWithCounts, error) {
	var rows []StoreWithCounts
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Select("stores.*," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.store_id = stores.id) AS rating_count").
		Order("avg_rating DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *statsRepository) MostActiveUsers(ctx context.Context, limit int) ([]ActiveUser, error) {
	var rows []ActiveUser
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id, users.name," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.user_id = users.id) AS rating_count").
		Order("rating_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) UserGrowth(ctx context.Context, since time.Time) ([]DayCount, error) {
	return r.growth(ctx, &model.User{}, since)
}

func (r *statsRepository) StoreGrowth(ctx context.Context, since time.Time) ([]DayCount, error) {
	return r.growth(ctx, &model.Store{}, since)
}

func (r *statsRepository) RatingGrowth(ctx context.Context, since time.Time) ([]DayCount, error) {
	return r.growth(ctx, &model.Rating{}, since)
}

// growth 按天归并的新增数量，date() 在 postgres 和 sqlite 下行为一致
func (r *statsRepository) growth(ctx context.Context, mdl interface{}, since time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.db.WithContext(ctx).Model(mdl).
		Select("date(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("date(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) RatingDistribution(ctx context.Context) ([]RatingValueCount, error) {
	var rows []RatingValueCount
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Order("rating ASC").
		Scan(&rows).Error
	return rows, err
}
