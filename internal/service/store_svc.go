package service

import (
	"context"
	"errors"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/repository"
)

// ==================== StoreService 店铺服务 ====================

// StoreService 店铺查询与维护
// 更新/删除的权限（店主本人或管理员）由路由上的 Access Control 中间件把关
type StoreService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// List 店铺列表，支持搜索与排序（含 avgRating）
func (s *StoreService) List(ctx context.Context, filter repository.StoreFilter) (*dto.StoreListResponse, error) {
	rows, total, err := s.storeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stores := make([]dto.StoreInfo, 0, len(rows))
	for i := range rows {
		stores = append(stores, *dto.NewStoreInfo(&rows[i]))
	}
	return &dto.StoreListResponse{
		Stores: stores,
		Pagination: dto.Pagination{
			Page:  filter.PageNum,
			Limit: filter.Limit(),
			Total: total,
			Pages: filter.Pages(total),
		},
	}, nil
}

// Get 店铺详情，avgRating 始终与评分集一致
func (s *StoreService) Get(ctx context.Context, id string) (*dto.StoreInfo, error) {
	row, err := s.storeRepo.GetWithCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrStoreNotFound
	}
	return dto.NewStoreInfo(row), nil
}

// ListOwned 店主视角：名下全部店铺
func (s *StoreService) ListOwned(ctx context.Context, ownerID string) ([]dto.StoreInfo, error) {
	rows, err := s.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stores := make([]dto.StoreInfo, 0, len(rows))
	for i := range rows {
		stores = append(stores, *dto.NewStoreInfo(&rows[i]))
	}
	return stores, nil
}

// Update 更新店铺 name/email/address
// 换邮箱时校验唯一性；avgRating 不在可更新字段内
func (s *StoreService) Update(ctx context.Context, id string, req *dto.UpdateStoreRequest) (*dto.StoreInfo, error) {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" && req.Email != store.Email {
		existing, err := s.storeRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrStoreEmailTaken
		}
		fields["email"] = req.Email
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if len(fields) > 0 {
		if err := s.storeRepo.UpdateFields(ctx, id, fields); err != nil {
			// 与 GetByEmail 预检并发竞争时命中唯一索引
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, ErrStoreEmailTaken
			}
			return nil, err
		}
	}

	return s.Get(ctx, id)
}

// Delete 删除店铺（仅管理员路由可达），评分级联删除
func (s *StoreService) Delete(ctx context.Context, id string) error {
	store, err := s.storeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrStoreNotFound
	}
	return s.storeRepo.Delete(ctx, id)
}
