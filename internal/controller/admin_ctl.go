package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/service"
)

// ==================== AdminController 管理控制器 ====================

// AdminController 管理端接口，整组路由挂在 SYSTEM_ADMIN 校验之后
type AdminController struct {
	adminService *service.AdminService
}

// NewAdminController 创建管理控制器
func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// Dashboard 仪表盘
// @Summary 平台统计总览
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/dashboard [get]
func (ctl *AdminController) Dashboard(c *gin.Context) {
	resp, err := ctl.adminService.Dashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// CreateUser 创建用户
// @Summary 管理员创建用户（任意角色）
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "用户信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /admin/users [post]
func (ctl *AdminController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ctl.adminService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

// CreateStore 创建店铺
// @Summary 管理员创建店铺（ownerId 必须是 STORE_OWNER）
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "店铺信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/stores [post]
func (ctl *AdminController) CreateStore(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	store, err := ctl.adminService.CreateStore(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Store created successfully", gin.H{"store": store})
}

// UpdateUserRole 更新用户角色
// @Summary 调整用户角色（不能改自己的角色）
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 ID"
// @Param request body dto.UpdateRoleRequest true "角色"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /admin/users/{id}/role [put]
func (ctl *AdminController) UpdateUserRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ctl.adminService.UpdateUserRole(c.Request.Context(),
		middleware.GetUserID(c), c.Param("id"), req.Role)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User role updated successfully", gin.H{"user": user})
}

// Analytics 趋势分析
// @Summary 按天的增长趋势与评分分布
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param period query int false "回溯天数，默认 30"
// @Success 200 {object} map[string]interface{}
// @Router /admin/analytics [get]
func (ctl *AdminController) Analytics(c *gin.Context) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctl.adminService.Analytics(c.Request.Context(), query.Period)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}
