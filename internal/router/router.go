package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"store_rating_api/internal/controller"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// Controllers 控制器集合
type Controllers struct {
	Auth   *controller.AuthController
	User   *controller.UserController
	Store  *controller.StoreController
	Rating *controller.RatingController
	Admin  *controller.AdminController
}

// SetupRouter 注册所有路由
// 权限链约定：JWTAuth -> RequireRole -> RequireStoreAccess（需要归属校验时），
// 全部通过后才进入 controller
func SetupRouter(ctls *Controllers, storeRepo repository.StoreRepository) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			auth.POST("/signup", ctls.Auth.Signup)
			auth.POST("/login", ctls.Auth.Login)
			auth.GET("/me", middleware.JWTAuth(), ctls.Auth.Me)
			auth.POST("/logout", middleware.JWTAuth(), ctls.Auth.Logout)
		}

		// users 用户组（全部需要登录）
		users := api.Group("/users", middleware.JWTAuth())
		{
			users.GET("", middleware.RequireRole(model.RoleSystemAdmin), ctls.User.List)
			users.GET("/:id", ctls.User.Get)
			users.PUT("/:id", ctls.User.Update)
			users.PUT("/:id/password", ctls.User.UpdatePassword)
			users.DELETE("/:id", middleware.RequireRole(model.RoleSystemAdmin), ctls.User.Delete)
		}

		// stores 店铺组（浏览公开，变更走权限链）
		stores := api.Group("/stores")
		{
			stores.GET("", ctls.Store.List)
			stores.GET("/mine",
				middleware.JWTAuth(),
				middleware.RequireRole(model.RoleStoreOwner, model.RoleSystemAdmin),
				ctls.Store.ListMine)
			stores.GET("/:id", ctls.Store.Get)
			stores.PUT("/:id",
				middleware.JWTAuth(),
				middleware.RequireStoreAccess(storeRepo),
				ctls.Store.Update)
			stores.DELETE("/:id",
				middleware.JWTAuth(),
				middleware.RequireRole(model.RoleSystemAdmin),
				ctls.Store.Delete)
		}

		// ratings 评分组（全部需要登录）
		ratings := api.Group("/ratings", middleware.JWTAuth())
		{
			ratings.POST("", middleware.RequireRole(model.RoleNormalUser), ctls.Rating.Submit)
			ratings.GET("/store/:storeId", ctls.Rating.ListByStore)
			ratings.GET("/user/:userId", ctls.Rating.ListByUser)
			ratings.DELETE("/:id", ctls.Rating.Delete)
		}

		// admin 管理组（整组要求 SYSTEM_ADMIN）
		admin := api.Group("/admin",
			middleware.JWTAuth(),
			middleware.RequireRole(model.RoleSystemAdmin))
		{
			admin.GET("/dashboard", ctls.Admin.Dashboard)
			admin.GET("/analytics", ctls.Admin.Analytics)
			admin.POST("/users", ctls.Admin.CreateUser)
			admin.POST("/stores", ctls.Admin.CreateStore)
			admin.PUT("/users/:id/role", ctls.Admin.UpdateUserRole)
		}
	}

	return r
}
