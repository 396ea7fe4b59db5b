package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// bcrypt 代价因子，与历史数据保持一致
const bcryptCost = 12

// ==================== AuthService 认证服务 ====================

// AuthService 注册/登录/当前用户
type AuthService struct {
	userRepo         repository.UserRepository
	allowAdminSignup bool
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, allowAdminSignup bool) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		allowAdminSignup: allowAdminSignup,
	}
}

// Signup 注册新用户
// 角色默认 NORMAL_USER；STORE_OWNER 放开；SYSTEM_ADMIN 仅在配置开关打开时允许
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
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
	switch model.Role(req.Role) {
	case model.RoleStoreOwner:
		role = model.RoleStoreOwner
	case model.RoleSystemAdmin:
		if !s.allowAdminSignup {
			return nil, ErrAdminSignupDisabled
		}
		role = model.RoleSystemAdmin
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
		// 与 ExistsByEmail 预检并发竞争时命中唯一索引
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  dto.NewUserInfo(user),
		Token: token,
	}, nil
}

// Login 邮箱+密码登录
// 未知邮箱与密码错误返回同一个错误，不泄露账号是否存在
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:  dto.NewUserInfo(user),
		Token: token,
	}, nil
}

// Me 当前登录用户
func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return dto.NewUserInfo(user), nil
}
