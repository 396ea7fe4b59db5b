package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_rating_api/internal/model"
)

// ==================== StoreRepository 店铺仓库 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id string) (*model.Store, error)
	GetWithCounts(ctx context.Context, id string) (*StoreWithCounts, error)
	GetByEmail(ctx context.Context, email string) (*model.Store, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter StoreFilter) ([]StoreWithCounts, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]StoreWithCounts, error)
}

// StoreFilter 店铺筛选条件
type StoreFilter struct {
	Search string // 模糊匹配 name/email/address
	Page
}

// StoreWithCounts 店铺 + 评分数，供列表/详情展示
type StoreWithCounts struct {
	model.Store
	RatingCount int64 `json:"ratingCount"`
}

// ==================== 实现 ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓库
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	err := r.db.WithContext(ctx).Create(store).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// GetByID 根据 ID 获取店铺（带店主），未找到返回 (nil, nil)
func (r *storeRepository) GetByID(ctx context.Context, id string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetWithCounts(ctx context.Context, id string) (*StoreWithCounts, error) {
	var row StoreWithCounts
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Select("stores.*," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.store_id = stores.id) AS rating_count").
		Preload("Owner").
		Where("stores.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *storeRepository) GetByEmail(ctx context.Context, email string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.Store{}).Where("id = ?", id).Updates(fields).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// Delete 删除店铺，评分随之级联删除
func (r *storeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Store{}).Error
	})
}

func (r *storeRepository) List(ctx context.Context, filter StoreFilter) ([]StoreWithCounts, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Store{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []StoreWithCounts
	err := query.
		Select("stores.*," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.store_id = stores.id) AS rating_count").
		Preload("Owner").
		Order(filter.OrderClause(storeSortColumns)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByOwner 店主视角：名下全部店铺
func (r *storeRepository) ListByOwner(ctx context.Context, ownerID string) ([]StoreWithCounts, error) {
	var rows []StoreWithCounts
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Select("stores.*," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.store_id = stores.id) AS rating_count").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// 店铺列表允许的排序字段
var storeSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"address":   "address",
	"createdAt": "created_at",
	"avgRating": "avg_rating",
}
