package database

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// SeedDemo 写入演示数据：管理员、店主、普通用户、店铺和评分
// 库里已有用户时跳过，避免重复执行
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("seed: users already present, skipping")
		return nil
	}

	ctx := context.Background()

	hash := func(pw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		return string(h)
	}

	admin := &model.User{
		Name:     "System Administrator Demo Account",
		Email:    "admin@storerating.com",
		Password: hash("Admin@1234"),
		Address:  "1 Platform Street, Admin City",
		Role:     model.RoleSystemAdmin,
	}
	owner1 := &model.User{
		Name:     "Coffee Corner Owner Demo Account",
		Email:    "owner1@storerating.com",
		Password: hash("Owner@1234"),
		Address:  "12 Market Street, Springfield",
		Role:     model.RoleStoreOwner,
	}
	owner2 := &model.User{
		Name:     "Bookstore Proprietor Demo Account",
		Email:    "owner2@storerating.com",
		Password: hash("Owner@1234"),
		Address:  "48 Harbour Road, Springfield",
		Role:     model.RoleStoreOwner,
	}
	userA := &model.User{
		Name:     "Alice Example Normal User Account",
		Email:    "alice@example.com",
		Password: hash("User@12345"),
		Address:  "3 Elm Street, Springfield",
		Role:     model.RoleNormalUser,
	}
	userB := &model.User{
		Name:     "Bob Example Normal User Account!",
		Email:    "bob@example.com",
		Password: hash("User@12345"),
		Address:  "5 Oak Avenue, Springfield",
		Role:     model.RoleNormalUser,
	}
	for _, u := range []*model.User{admin, owner1, owner2, userA, userB} {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	coffee := &model.Store{
		Name:    "Coffee Corner Speciality Roasters",
		Email:   "hello@coffeecorner.com",
		Address: "12 Market Street, Springfield",
		OwnerID: owner1.ID,
	}
	books := &model.Store{
		Name:    "Harbour Road Independent Books!",
		Email:   "contact@harbourbooks.com",
		Address: "48 Harbour Road, Springfield",
		OwnerID: owner2.ID,
	}
	for _, s := range []*model.Store{coffee, books} {
		if err := db.Create(s).Error; err != nil {
			return err
		}
	}

	// 评分走正式的 upsert 通道，均分聚合随之生效
	ratingRepo := repository.NewRatingRepository(db)
	comment := "Great espresso, friendly staff"
	seedRatings := []*model.Rating{
		{UserID: userA.ID, StoreID: coffee.ID, Rating: 5, Comment: &comment},
		{UserID: userB.ID, StoreID: coffee.ID, Rating: 4},
		{UserID: userA.ID, StoreID: books.ID, Rating: 3},
	}
	for _, r := range seedRatings {
		if _, _, err := ratingRepo.Upsert(ctx, r); err != nil {
			return err
		}
	}

	log.Println("seed: demo data created")
	return nil
}
