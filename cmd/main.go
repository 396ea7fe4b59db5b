package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"store_rating_api/internal/controller"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
	"store_rating_api/internal/router"
	"store_rating_api/internal/service"
	"store_rating_api/pkg/config"
	"store_rating_api/pkg/database"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. 初始化数据库
	db, err := database.InitDB(cfg.DatabaseDSN,
		&model.User{}, &model.Store{}, &model.Rating{})
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer database.Close(db)

	// 3. JWT 配置（唯一签发路径）
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Issuer:    "store-ratings",
	})

	// 4. 演示数据（可选）
	if cfg.SeedDemo {
		if err := database.SeedDemo(db); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	// 5. 初始化依赖
	deps := initDependencies(db, cfg)

	// 6. 路由 + 启动
	r := router.SetupRouter(deps.Controllers, deps.Repos.Store)
	startServer(r, cfg.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User   repository.UserRepository
	Store  repository.StoreRepository
	Rating repository.RatingRepository
	Stats  repository.StatsRepository
}

// Services 服务集合
type Services struct {
	Auth   *service.AuthService
	User   *service.UserService
	Store  *service.StoreService
	Rating *service.RatingService
	Admin  *service.AdminService
}

// initDependencies 初始化依赖：Repository -> Service -> Controller
func initDependencies(db *gorm.DB, cfg config.Config) *Dependencies {
	repos := &Repositories{
		User:   repository.NewUserRepository(db),
		Store:  repository.NewStoreRepository(db),
		Rating: repository.NewRatingRepository(db),
		Stats:  repository.NewStatsRepository(db),
	}

	services := &Services{
		Auth:   service.NewAuthService(repos.User, cfg.AllowAdminSignup),
		User:   service.NewUserService(repos.User),
		Store:  service.NewStoreService(repos.Store),
		Rating: service.NewRatingService(repos.Rating, repos.Store),
		Admin:  service.NewAdminService(repos.User, repos.Store, repos.Stats),
	}

	controllers := &router.Controllers{
		Auth:   controller.NewAuthController(services.Auth, middleware.NewLoginLimiter()),
		User:   controller.NewUserController(services.User),
		Store:  controller.NewStoreController(services.Store),
		Rating: controller.NewRatingController(services.Rating),
		Admin:  controller.NewAdminController(services.Admin),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务并优雅关闭
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server exited")
}
