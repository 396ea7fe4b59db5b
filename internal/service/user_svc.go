package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户资料的读写，自助或管理员代办
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 用户列表（仅管理员路由可达）
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) (*dto.UserListResponse, error) {
	rows, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	users := make([]dto.UserDetail, 0, len(rows))
	for i := range rows {
		users = append(users, *dto.NewUserDetail(&rows[i]))
	}
	return &dto.UserListResponse{
		Users: users,
		Pagination: dto.Pagination{
			Page:  filter.PageNum,
			Limit: filter.Limit(),
			Total: total,
			Pages: filter.Pages(total),
		},
	}, nil
}

// Get 用户详情，本人或管理员可见
func (s *UserService) Get(ctx context.Context, actorID string, actorRole model.Role, id string) (*dto.UserDetail, error) {
	if actorRole != model.RoleSystemAdmin && actorID != id {
		return nil, ErrProfileAccess
	}

	row, err := s.userRepo.GetWithCounts(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrUserNotFound
	}
	return dto.NewUserDetail(row), nil
}

// UpdateProfile 更新姓名/地址，本人或管理员
func (s *UserService) UpdateProfile(ctx context.Context, actorID string, actorRole model.Role, id string, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	if actorRole != model.RoleSystemAdmin && actorID != id {
		return nil, ErrProfileUpdate
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserInfo(updated), nil
}

// UpdatePassword 修改密码
// 本人需提供正确的当前密码；管理员代改跳过该校验
func (s *UserService) UpdatePassword(ctx context.Context, actorID string, actorRole model.Role, id string, req *dto.UpdatePasswordRequest) error {
	if actorRole != model.RoleSystemAdmin && actorID != id {
		return ErrPasswordUpdate
	}

	if errs := dto.PasswordPolicyErrors("newPassword", req.NewPassword); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if actorRole != model.RoleSystemAdmin {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return ErrWrongPassword
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, string(hashed))
}

// Delete 删除用户（仅管理员路由可达），级联清理店铺与评分
// 管理员不能删除自己
func (s *UserService) Delete(ctx context.Context, actorID string, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if id == actorID {
		return ErrSelfDelete
	}
	return s.userRepo.Delete(ctx, id)
}
