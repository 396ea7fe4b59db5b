package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

func newAdminService(db *gorm.DB) *AdminService {
	return NewAdminService(
		repository.NewUserRepository(db),
		repository.NewStoreRepository(db),
		repository.NewStatsRepository(db),
	)
}

func validCreateStore(ownerID string) *dto.CreateStoreRequest {
	return &dto.CreateStoreRequest{
		Name:    "The Very Best Coffee House",
		Email:   "coffee@test.com",
		Address: "1 Market Street",
		OwnerID: ownerID,
	}
}

// ==================== CreateUser ====================

func TestAdminService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	info, err := svc.CreateUser(ctx, &dto.CreateUserRequest{
		Name:     "Jonathan Michael Doe Smith",
		Email:    "owner@test.com",
		Password: "Password@123",
		Address:  "addr",
		Role:     string(model.RoleStoreOwner),
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if info.Role != string(model.RoleStoreOwner) {
		t.Errorf("role = %s, want STORE_OWNER", info.Role)
	}

	// 重复邮箱
	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{
		Name:     "Jonathan Michael Doe Smith",
		Email:    "owner@test.com",
		Password: "Password@123",
		Address:  "addr",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

// ==================== CreateStore ====================

func TestAdminService_CreateStoreOwnerGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	normal := &model.User{Name: "n", Email: "n@test.com", Password: "x", Address: "a", Role: model.RoleNormalUser}
	owner := &model.User{Name: "o", Email: "o@test.com", Password: "x", Address: "a", Role: model.RoleStoreOwner}
	for _, u := range []*model.User{normal, owner} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	// 店主不存在
	if _, err := svc.CreateStore(ctx, validCreateStore("missing")); !errors.Is(err, ErrOwnerNotFound) {
		t.Errorf("err = %v, want ErrOwnerNotFound", err)
	}
	// 店主角色不对
	if _, err := svc.CreateStore(ctx, validCreateStore(normal.ID)); !errors.Is(err, ErrOwnerRole) {
		t.Errorf("err = %v, want ErrOwnerRole", err)
	}

	// 合法创建
	info, err := svc.CreateStore(ctx, validCreateStore(owner.ID))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if info.AvgRating != 0 {
		t.Errorf("new store avg = %v, want 0", info.AvgRating)
	}
	if info.Owner == nil || info.Owner.ID != owner.ID {
		t.Errorf("owner brief = %+v", info.Owner)
	}

	// 店铺邮箱冲突
	if _, err := svc.CreateStore(ctx, validCreateStore(owner.ID)); !errors.Is(err, ErrStoreEmailTaken) {
		t.Errorf("err = %v, want ErrStoreEmailTaken", err)
	}
}

// 并发创建同邮箱店铺：GetByEmail 预检通过但插入命中唯一索引，仍返回 ErrStoreEmailTaken
func TestAdminService_CreateStoreDuplicateEmailRace(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := &model.User{Name: "o", Email: "o@test.com", Password: "x", Address: "a", Role: model.RoleStoreOwner}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	svc := NewAdminService(
		repository.NewUserRepository(db),
		dupEmailStoreRepo{repository.NewStoreRepository(db)},
		repository.NewStatsRepository(db),
	)
	if _, err := svc.CreateStore(ctx, validCreateStore(owner.ID)); !errors.Is(err, ErrStoreEmailTaken) {
		t.Errorf("err = %v, want ErrStoreEmailTaken", err)
	}
}

// ==================== UpdateUserRole ====================

func TestAdminService_UpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ctx := context.Background()

	admin := &model.User{Name: "a", Email: "a@test.com", Password: "x", Address: "a", Role: model.RoleSystemAdmin}
	alice := &model.User{Name: "u", Email: "u@test.com", Password: "x", Address: "a", Role: model.RoleNormalUser}
	for _, u := range []*model.User{admin, alice} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	// 非法角色值
	if _, err := svc.UpdateUserRole(ctx, admin.ID, alice.ID, "SUPERUSER"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}
	// 管理员不能改自己的角色
	if _, err := svc.UpdateUserRole(ctx, admin.ID, admin.ID, string(model.RoleNormalUser)); !errors.Is(err, ErrSelfRoleChange) {
		t.Errorf("err = %v, want ErrSelfRoleChange", err)
	}
	// 目标不存在
	if _, err := svc.UpdateUserRole(ctx, admin.ID, "missing", string(model.RoleStoreOwner)); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}

	info, err := svc.UpdateUserRole(ctx, admin.ID, alice.ID, string(model.RoleStoreOwner))
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if info.Role != string(model.RoleStoreOwner) {
		t.Errorf("role = %s, want STORE_OWNER", info.Role)
	}
	var stored model.User
	if err := db.First(&stored, "id = ?", alice.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Role != model.RoleStoreOwner {
		t.Errorf("stored role = %s", stored.Role)
	}
}

// ==================== Dashboard / Analytics ====================

func TestAdminService_Dashboard(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ratingRepo := repository.NewRatingRepository(db)
	ctx := context.Background()

	owner := &model.User{Name: "o", Email: "o@test.com", Password: "x", Address: "a", Role: model.RoleStoreOwner}
	alice := &model.User{Name: "u", Email: "u@test.com", Password: "x", Address: "a", Role: model.RoleNormalUser}
	for _, u := range []*model.User{owner, alice} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	store := &model.Store{Name: "s", Email: "s@test.com", Address: "a", OwnerID: owner.ID}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if _, _, err := ratingRepo.Upsert(ctx, &model.Rating{UserID: alice.ID, StoreID: store.ID, Rating: 4}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	resp, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if resp.Statistics.Users != 2 || resp.Statistics.Stores != 1 || resp.Statistics.Ratings != 1 {
		t.Errorf("totals = %+v", resp.Statistics)
	}
	if resp.Statistics.AverageRating != 4 {
		t.Errorf("platform avg = %v, want 4", resp.Statistics.AverageRating)
	}
	if len(resp.UserRoleDistribution) != 2 {
		t.Errorf("role distribution = %+v", resp.UserRoleDistribution)
	}
	if len(resp.RecentUsers) != 2 || len(resp.RecentStores) != 1 {
		t.Errorf("recent users = %d, stores = %d", len(resp.RecentUsers), len(resp.RecentStores))
	}
	if len(resp.TopRatedStores) != 1 || resp.TopRatedStores[0].AvgRating != 4 {
		t.Errorf("top stores = %+v", resp.TopRatedStores)
	}
}

func TestAdminService_Analytics(t *testing.T) {
	db := setupTestDB(t)
	svc := newAdminService(db)
	ratingRepo := repository.NewRatingRepository(db)
	ctx := context.Background()

	owner := &model.User{Name: "o", Email: "o@test.com", Password: "x", Address: "a", Role: model.RoleStoreOwner}
	alice := &model.User{Name: "u", Email: "u@test.com", Password: "x", Address: "a", Role: model.RoleNormalUser}
	bob := &model.User{Name: "b", Email: "b@test.com", Password: "x", Address: "a", Role: model.RoleNormalUser}
	for _, u := range []*model.User{owner, alice, bob} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	store := &model.Store{Name: "s", Email: "s@test.com", Address: "a", OwnerID: owner.ID}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	for _, r := range []*model.Rating{
		{UserID: alice.ID, StoreID: store.ID, Rating: 5},
		{UserID: bob.ID, StoreID: store.ID, Rating: 5},
	} {
		if _, _, err := ratingRepo.Upsert(ctx, r); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	resp, err := svc.Analytics(ctx, 30)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if resp.Period != "30 days" {
		t.Errorf("period = %q", resp.Period)
	}
	if len(resp.UserGrowth) != 1 || resp.UserGrowth[0].Count != 3 {
		t.Errorf("user growth = %+v", resp.UserGrowth)
	}
	if len(resp.RatingDistribution) != 1 || resp.RatingDistribution[0].Rating != 5 || resp.RatingDistribution[0].Count != 2 {
		t.Errorf("rating distribution = %+v", resp.RatingDistribution)
	}
	if len(resp.MostActiveUsers) == 0 || resp.MostActiveUsers[0].RatingCount != 1 {
		t.Errorf("most active = %+v", resp.MostActiveUsers)
	}
}
