package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 注册/登录/当前用户
type AuthController struct {
	authService  *service.AuthService
	loginLimiter *middleware.LoginLimiter
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService, loginLimiter *middleware.LoginLimiter) *AuthController {
	return &AuthController{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Signup 注册
// @Summary 注册新用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "注册信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/signup [post]
func (ctl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctl.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", resp)
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if result := ctl.loginLimiter.Check(req.Email); !result.Allowed {
		fail(c, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		return
	}

	resp, err := ctl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		ctl.loginLimiter.MarkFailure(req.Email)
		handleServiceError(c, err)
		return
	}

	ctl.loginLimiter.MarkSuccess(req.Email)
	respond(c, http.StatusOK, "", resp)
}

// Me 当前登录用户
// @Summary 获取当前用户
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.authService.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user})
}

// Logout 登出（Token 由客户端丢弃）
// @Summary 登出
// @Tags Auth
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	respond(c, http.StatusOK, "Logout successful", nil)
}
