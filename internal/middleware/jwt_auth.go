package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey string        // 签名密钥
	TokenTTL  time.Duration // Token 有效期
	Issuer    string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey: "store-ratings-secret-change-in-production",
		TokenTTL:  24 * time.Hour,
		Issuer:    "store-ratings",
	}
}

var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 启动时注入配置，全系统只有这一条签发路径
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// ==================== Claims 定义 ====================

// UserClaims 用户声明
type UserClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ==================== Token 生成与解析 ====================

// GenerateAccessToken 签发 Access Token
func GenerateAccessToken(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   "access",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ParseToken 解析并校验 Token
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// abort 统一的拒绝响应
func abort(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

// JWTAuth 认证中间件：Bearer Token -> {userID, role}
// 角色值不在枚举内的 Token 一律视为无效
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil || claims.Subject != "access" {
			abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		role, ok := model.ParseRole(claims.Role)
		if !ok {
			abort(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyRole, role)

		c.Next()
	}
}

// RequireRole 角色校验中间件，必须排在 JWTAuth 之后
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			abort(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Access denied. Insufficient permissions.")
	}
}

// RequireStoreAccess 店铺归属校验中间件（路由参数 :id 为店铺 ID）
// SYSTEM_ADMIN 无条件放行；其余角色必须是该店铺的 OwnerID
// 顺序约定：认证 -> 角色 -> 归属，全部通过后才进入业务逻辑
func RequireStoreAccess(storeRepo repository.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) == model.RoleSystemAdmin {
			c.Next()
			return
		}

		store, err := storeRepo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			abort(c, http.StatusInternalServerError, "Error checking store access.")
			return
		}
		if store == nil {
			abort(c, http.StatusNotFound, "Store not found.")
			return
		}
		if store.OwnerID != GetUserID(c) {
			abort(c, http.StatusForbidden, "Access denied. You can only access your own stores.")
			return
		}

		c.Next()
	}
}

// ==================== Context 取值 ====================

// GetUserID 当前登录用户 ID，未认证为空串
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetRole 当前登录用户角色，未认证为空
func GetRole(c *gin.Context) model.Role {
	if v, ok := c.Get(ContextKeyRole); ok {
		if role, ok := v.(model.Role); ok {
			return role
		}
	}
	return ""
}
