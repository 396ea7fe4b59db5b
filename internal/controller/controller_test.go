package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"store_rating_api/internal/controller"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
	"store_rating_api/internal/router"
	"store_rating_api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试环境 ====================

// testEnv 完整 HTTP 栈：sqlite + 仓库 + 服务 + 路由
type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
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

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	ctls := &router.Controllers{
		Auth:   controller.NewAuthController(service.NewAuthService(userRepo, false), middleware.NewLoginLimiter()),
		User:   controller.NewUserController(service.NewUserService(userRepo)),
		Store:  controller.NewStoreController(service.NewStoreService(storeRepo)),
		Rating: controller.NewRatingController(service.NewRatingService(ratingRepo, storeRepo)),
		Admin:  controller.NewAdminController(service.NewAdminService(userRepo, storeRepo, statsRepo)),
	}

	return &testEnv{db: db, engine: router.SetupRouter(ctls, storeRepo)}
}

// request 发送请求，token 为空则匿名
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// decode 解析响应信封
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// ==================== 账号帮助 ====================

func (e *testEnv) createUser(t *testing.T, email string, role model.Role) (*model.User, string) {
	t.Helper()
	u := &model.User{
		Name:     "Seeded Account For Controller Tests",
		Email:    email,
		Password: "x",
		Address:  "addr",
		Role:     role,
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := middleware.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return u, token
}

func (e *testEnv) createStore(t *testing.T, email, ownerID string) *model.Store {
	t.Helper()
	s := &model.Store{Name: "store", Email: email, Address: "addr", OwnerID: ownerID}
	if err := e.db.Create(s).Error; err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return s
}
