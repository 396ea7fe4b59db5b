package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config 全局配置，进程启动时加载一次，显式注入各层
type Config struct {
	// Server
	Port string `envconfig:"SERVER_PORT" default:"8080"`

	// DB
	DatabaseDSN string `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=store_ratings port=5432 sslmode=disable"`

	// JWT
	JWTSecret string        `envconfig:"JWT_SECRET" default:"store-ratings-secret-change-in-production"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// 业务开关
	AllowAdminSignup bool `envconfig:"ALLOW_ADMIN_SIGNUP" default:"false"`
	SeedDemo         bool `envconfig:"SEED_DEMO" default:"false"`
}

// Load 读取 .env（如果存在）并解析环境变量
func Load() (Config, error) {
	// .env 不存在不算错误，生产环境直接用环境变量
	_ = godotenv.Load()

	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
