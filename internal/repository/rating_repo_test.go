package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store_rating_api/internal/model"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    email,
		Password: "x",
		Address:  "addr",
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedStore(t *testing.T, db *gorm.DB, name, email, ownerID string) *model.Store {
	t.Helper()
	s := &model.Store{
		Name:    name,
		Email:   email,
		Address: "addr",
		OwnerID: ownerID,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return s
}

func storeAvg(t *testing.T, db *gorm.DB, storeID string) float64 {
	t.Helper()
	var s model.Store
	if err := db.First(&s, "id = ?", storeID).Error; err != nil {
		t.Fatalf("load store: %v", err)
	}
	return s.AvgRating
}

// ==================== Upsert ====================

func TestRatingRepository_UpsertSingleRowPerKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	owner := seedUser(t, db, "owner", "owner@test.com", model.RoleStoreOwner)
	user := seedUser(t, db, "alice", "alice@test.com", model.RoleNormalUser)
	store := seedStore(t, db, "store", "store@test.com", owner.ID)

	comment := "nice place"
	first, created, err := repo.Upsert(ctx, &model.Rating{
		UserID: user.ID, StoreID: store.ID, Rating: 5, Comment: &comment,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !created {
		t.Errorf("created = false, want true")
	}
	if first.Rating != 5 || first.Comment == nil || *first.Comment != "nice place" {
		t.Errorf("unexpected first record: %+v", first)
	}

	// 再次提交同一 (user, store)：覆盖而不是新建，省略评论时旧评论清空
	second, created, err := repo.Upsert(ctx, &model.Rating{
		UserID: user.ID, StoreID: store.ID, Rating: 2,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if created {
		t.Errorf("created = true, want false")
	}
	if second.ID != first.ID {
		t.Errorf("row identity changed: %s -> %s", first.ID, second.ID)
	}
	if second.Rating != 2 {
		t.Errorf("rating = %d, want 2", second.Rating)
	}
	if second.Comment != nil {
		t.Errorf("comment = %v, want nil", *second.Comment)
	}

	var count int64
	db.Model(&model.Rating{}).
		Where("user_id = ? AND store_id = ?", user.ID, store.ID).
		Count(&count)
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

// ==================== 均分聚合 ====================

func TestRatingRepository_AvgFollowsRatingSet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	owner := seedUser(t, db, "owner", "owner@test.com", model.RoleStoreOwner)
	alice := seedUser(t, db, "alice", "alice@test.com", model.RoleNormalUser)
	bob := seedUser(t, db, "bob", "bob@test.com", model.RoleNormalUser)
	store := seedStore(t, db, "store", "store@test.com", owner.ID)

	if avg := storeAvg(t, db, store.ID); avg != 0 {
		t.Fatalf("initial avg = %v, want 0", avg)
	}

	// A 打 5 分：0 -> 5
	if _, _, err := repo.Upsert(ctx, &model.Rating{UserID: alice.ID, StoreID: store.ID, Rating: 5}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if avg := storeAvg(t, db, store.ID); avg != 5 {
		t.Errorf("avg = %v, want 5", avg)
	}

	// B 打 3 分：-> 4.0
	if _, _, err := repo.Upsert(ctx, &model.Rating{UserID: bob.ID, StoreID: store.ID, Rating: 3}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if avg := storeAvg(t, db, store.ID); avg != 4 {
		t.Errorf("avg = %v, want 4", avg)
	}

	// A 改成 1 分：-> (1+3)/2 = 2.0
	if _, _, err := repo.Upsert(ctx, &model.Rating{UserID: alice.ID, StoreID: store.ID, Rating: 1}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if avg := storeAvg(t, db, store.ID); avg != 2 {
		t.Errorf("avg = %v, want 2", avg)
	}

	// B 删除：-> 1.0
	bobRating, err := repo.GetByUserAndStore(ctx, bob.ID, store.ID)
	if err != nil || bobRating == nil {
		t.Fatalf("get bob rating: %v", err)
	}
	if err := repo.Delete(ctx, bobRating); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if avg := storeAvg(t, db, store.ID); avg != 1 {
		t.Errorf("avg = %v, want 1", avg)
	}

	// A 删除（最后一条）：-> 0，而不是残留旧值
	aliceRating, err := repo.GetByUserAndStore(ctx, alice.ID, store.ID)
	if err != nil || aliceRating == nil {
		t.Fatalf("get alice rating: %v", err)
	}
	if err := repo.Delete(ctx, aliceRating); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if avg := storeAvg(t, db, store.ID); avg != 0 {
		t.Errorf("avg after last delete = %v, want 0", avg)
	}
}

func TestRatingRepository_AvgRoundsToTwoDecimals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	owner := seedUser(t, db, "owner", "owner@test.com", model.RoleStoreOwner)
	store := seedStore(t, db, "store", "store@test.com", owner.ID)

	// 5, 4, 4 -> 4.333... -> 4.33
	for i, v := range []int{5, 4, 4} {
		u := seedUser(t, db, "user", string(rune('a'+i))+"@test.com", model.RoleNormalUser)
		if _, _, err := repo.Upsert(ctx, &model.Rating{UserID: u.ID, StoreID: store.ID, Rating: v}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if avg := storeAvg(t, db, store.ID); avg != 4.33 {
		t.Errorf("avg = %v, want 4.33", avg)
	}
}

// ==================== 列表 ====================

func TestRatingRepository_ListByStorePagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRatingRepository(db)

	owner := seedUser(t, db, "owner", "owner@test.com", model.RoleStoreOwner)
	store := seedStore(t, db, "store", "store@test.com", owner.ID)

	for i := 0; i < 15; i++ {
		u := seedUser(t, db, "user", string(rune('a'+i))+"@test.com", model.RoleNormalUser)
		if _, _, err := repo.Upsert(ctx, &model.Rating{UserID: u.ID, StoreID: store.ID, Rating: 1 + i%5}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	ratings, total, err := repo.ListByStore(ctx, store.ID, Page{PageNum: 2, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}
	if len(ratings) != 5 {
		t.Errorf("page 2 size = %d, want 5", len(ratings))
	}
	for i := range ratings {
		if ratings[i].User == nil {
			t.Errorf("rating %d missing preloaded user", i)
		}
	}
}
