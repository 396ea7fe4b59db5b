package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"store_rating_api/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetWithCounts(ctx context.Context, id string) (*UserWithCounts, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
	UpdateRole(ctx context.Context, id string, role model.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]UserWithCounts, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserFilter 用户筛选条件
type UserFilter struct {
	Search string // 模糊匹配 name/email/address
	Role   model.Role
	Page
}

// UserWithCounts 用户 + 关联统计，供列表/详情展示
type UserWithCounts struct {
	model.User
	OwnedStoreCount int64 `json:"ownedStoreCount"`
	RatingCount     int64 `json:"ratingCount"`
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

// GetByID 根据 ID 获取用户，未找到返回 (nil, nil)
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetWithCounts 用户详情，附带名下店铺数与评分数
func (r *userRepository) GetWithCounts(ctx context.Context, id string) (*UserWithCounts, error) {
	var row UserWithCounts
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*," +
			" (SELECT COUNT(*) FROM stores WHERE stores.owner_id = users.id) AS owned_store_count," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.user_id = users.id) AS rating_count").
		Where("users.id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password", hashedPassword).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("role", role).Error
}

// Delete 删除用户，级联清理名下店铺及相关评分
// 级联在事务里显式执行，不依赖各数据库对外键 ON DELETE 的开关差异
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 名下店铺收到的评分
		if err := tx.Where("store_id IN (?)",
			tx.Model(&model.Store{}).Select("id").Where("owner_id = ?", id),
		).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		// 名下店铺
		if err := tx.Where("owner_id = ?", id).Delete(&model.Store{}).Error; err != nil {
			return err
		}
		// 本人提交的评分，逐店铺重算均分
		var storeIDs []string
		if err := tx.Model(&model.Rating{}).Where("user_id = ?", id).
			Distinct().Pluck("store_id", &storeIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		for _, storeID := range storeIDs {
			if err := recomputeStoreAvg(tx, storeID); err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]UserWithCounts, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []UserWithCounts
	err := query.
		Select("users.*," +
			" (SELECT COUNT(*) FROM stores WHERE stores.owner_id = users.id) AS owned_store_count," +
			" (SELECT COUNT(*) FROM ratings WHERE ratings.user_id = users.id) AS rating_count").
		Order(filter.OrderClause(userSortColumns)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// 用户列表允许的排序字段
var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"address":   "address",
	"createdAt": "created_at",
}
