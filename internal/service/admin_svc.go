package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// ==================== AdminService 管理服务 ====================

// AdminService 管理员专属操作：建用户/建店铺/改角色/仪表盘/分析
// 所有方法都在 SYSTEM_ADMIN 路由组之后执行
type AdminService struct {
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	statsRepo repository.StatsRepository
}

// NewAdminService 创建管理服务
func NewAdminService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, statsRepo repository.StatsRepository) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		storeRepo: storeRepo,
		statsRepo: statsRepo,
	}
}

// CreateUser 管理员直接创建任意角色的用户
func (s *AdminService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserInfo, error) {
	if errs := dto.PasswordPolicyErrors("password", req.Password); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	role := model.RoleNormalUser
	if r, ok := model.ParseRole(req.Role); ok {
		role = r
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Address:  req.Address,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return dto.NewUserInfo(user), nil
}

// CreateStore 管理员创建店铺
// ownerId 必须指向一个已存在且角色恰为 STORE_OWNER 的用户；店铺邮箱全局唯一
func (s *AdminService) CreateStore(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreInfo, error) {
	owner, err := s.userRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrOwnerNotFound
	}
	if owner.Role != model.RoleStoreOwner {
		return nil, ErrOwnerRole
	}

	existing, err := s.storeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStoreEmailTaken
	}

	store := &model.Store{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		// 与 GetByEmail 预检并发竞争时命中唯一索引
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrStoreEmailTaken
		}
		return nil, err
	}

	return &dto.StoreInfo{
		ID:        store.ID,
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		AvgRating: store.AvgRating,
		Owner:     &dto.UserBrief{ID: owner.ID, Name: owner.Name},
		CreatedAt: store.CreatedAt,
	}, nil
}

// UpdateUserRole 调整用户角色
// 管理员不能修改自己的角色（既有业务规则，原样保留）
func (s *AdminService) UpdateUserRole(ctx context.Context, actorID string, targetID string, roleStr string) (*dto.UserInfo, error) {
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if targetID == actorID {
		return nil, ErrSelfRoleChange
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	user.Role = role
	return dto.NewUserInfo(user), nil
}

// Dashboard 仪表盘统计
func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totals, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.statsRepo.RoleDistribution(ctx)
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.statsRepo.RecentUsers(ctx, 5)
	if err != nil {
		return nil, err
	}
	recentStores, err := s.statsRepo.RecentStores(ctx, 5)
	if err != nil {
		return nil, err
	}
	topStores, err := s.statsRepo.TopRatedStores(ctx, 5)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Statistics:           totals,
		UserRoleDistribution: roles,
		TopRatedStores:       storeInfos(topStores),
	}
	for i := range recentUsers {
		u := &recentUsers[i]
		resp.RecentUsers = append(resp.RecentUsers, dto.RecentUser{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	for i := range recentStores {
		st := &recentStores[i]
		info := dto.StoreInfo{
			ID:        st.ID,
			Name:      st.Name,
			Email:     st.Email,
			Address:   st.Address,
			AvgRating: st.AvgRating,
			CreatedAt: st.CreatedAt,
		}
		if st.Owner != nil {
			info.Owner = &dto.UserBrief{ID: st.Owner.ID, Name: st.Owner.Name}
		}
		resp.RecentStores = append(resp.RecentStores, info)
	}
	return resp, nil
}

// Analytics 趋势分析，periodDays 为回溯天数
func (s *AdminService) Analytics(ctx context.Context, periodDays int) (*dto.AnalyticsResponse, error) {
	since := time.Now().AddDate(0, 0, -periodDays)

	userGrowth, err := s.statsRepo.UserGrowth(ctx, since)
	if err != nil {
		return nil, err
	}
	storeGrowth, err := s.statsRepo.StoreGrowth(ctx, since)
	if err != nil {
		return nil, err
	}
	ratingGrowth, err := s.statsRepo.RatingGrowth(ctx, since)
	if err != nil {
		return nil, err
	}
	topStores, err := s.statsRepo.TopRatedStores(ctx, 10)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.statsRepo.MostActiveUsers(ctx, 10)
	if err != nil {
		return nil, err
	}
	distribution, err := s.statsRepo.RatingDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsResponse{
		Period:             fmt.Sprintf("%d days", periodDays),
		UserGrowth:         userGrowth,
		StoreGrowth:        storeGrowth,
		RatingGrowth:       ratingGrowth,
		TopRatedStores:     storeInfos(topStores),
		MostActiveUsers:    activeUsers,
		RatingDistribution: distribution,
	}, nil
}

func storeInfos(rows []repository.StoreWithCounts) []dto.StoreInfo {
	infos := make([]dto.StoreInfo, 0, len(rows))
	for i := range rows {
		infos = append(infos, *dto.NewStoreInfo(&rows[i]))
	}
	return infos
}
