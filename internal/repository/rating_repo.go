package repository

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store_rating_api/internal/model"
)

// ==================== RatingRepository 评分仓库 ====================

// RatingRepository 评分仓储接口
// Upsert/Delete 在同一事务内完成评分写入与店铺均分重算，
// 事务提交后 stores.avg_rating 必然反映评分表的最新状态
type RatingRepository interface {
	// Upsert 以 (userID, storeID) 为键写入评分，created 标记本次是新建还是覆盖
	Upsert(ctx context.Context, rating *model.Rating) (result *model.Rating, created bool, err error)
	GetByID(ctx context.Context, id string) (*model.Rating, error)
	GetByUserAndStore(ctx context.Context, userID, storeID string) (*model.Rating, error)
	Delete(ctx context.Context, rating *model.Rating) error
	ListByStore(ctx context.Context, storeID string, page Page) ([]model.Rating, int64, error)
	ListByUser(ctx context.Context, userID string, page Page) ([]model.Rating, int64, error)
}

// ==================== 实现 ====================

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓库
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert 原子化 create-or-update
// 冲突处理交给存储层的唯一约束（ON CONFLICT DO UPDATE），
// 不做应用层 check-then-insert，并发下同键请求不会产生重复行。
// comment 为空时显式写入 NULL，不保留旧值。
func (r *ratingRepository) Upsert(ctx context.Context, rating *model.Rating) (*model.Rating, bool, error) {
	var result *model.Rating
	var created bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// created/updated 只影响响应文案，键的存在性以本事务内可见状态为准
		var existing int64
		if err := tx.Model(&model.Rating{}).
			Where("user_id = ? AND store_id = ?", rating.UserID, rating.StoreID).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rating", "comment", "updated_at",
			}),
		}).Create(rating).Error; err != nil {
			return err
		}

		// 冲突路径下插入对象里的 ID 是新生成的废值，按键回读真实行
		var row model.Rating
		if err := tx.Preload("User").Preload("Store").
			Where("user_id = ? AND store_id = ?", rating.UserID, rating.StoreID).
			First(&row).Error; err != nil {
			return err
		}
		result = &row

		return recomputeStoreAvg(tx, rating.StoreID)
	})
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// GetByID 根据 ID 获取评分，未找到返回 (nil, nil)
func (r *ratingRepository) GetByID(ctx context.Context, id string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetByUserAndStore(ctx context.Context, userID, storeID string) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete 删除评分并在同一事务内重算店铺均分
// 删除最后一条评分时均分回落为 0，而不是残留旧值
func (r *ratingRepository) Delete(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", rating.ID).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return recomputeStoreAvg(tx, rating.StoreID)
	})
}

func (r *ratingRepository) ListByStore(ctx context.Context, storeID string, page Page) ([]model.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Rating{}).Where("store_id = ?", storeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []model.Rating
	err := query.Preload("User").
		Order(page.OrderClause(ratingSortColumns)).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) ListByUser(ctx context.Context, userID string, page Page) ([]model.Rating, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Rating{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []model.Rating
	err := query.Preload("Store").
		Order(page.OrderClause(ratingSortColumns)).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// 评分列表允许的排序字段
var ratingSortColumns = map[string]string{
	"createdAt": "created_at",
	"rating":    "rating",
}

// ==================== 均分聚合 ====================

// recomputeStoreAvg 重算并落库店铺均分
// 规则：round(mean(rating), 2)，无评分时为 0
// 必须与触发它的评分变更同事务执行（user_repo 的级联删除也复用）
func recomputeStoreAvg(tx *gorm.DB, storeID string) error {
	var avg float64
	if err := tx.Model(&model.Rating{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}

	avg = math.Round(avg*100) / 100

	return tx.Model(&model.Store{}).Where("id = ?", storeID).
		Update("avg_rating", avg).Error
}
