package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/model"
	"store_rating_api/internal/repository"
	"store_rating_api/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户资料接口
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// List 用户列表
// @Summary 用户列表（管理员）
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param search query string false "按 name/email/address 模糊搜索"
// @Param role query string false "角色过滤"
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (ctl *UserController) List(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}
	var search dto.SearchQuery
	if err := c.ShouldBindQuery(&search); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctl.userService.List(c.Request.Context(), repository.UserFilter{
		Search: search.Search,
		Role:   model.Role(search.Role),
		Page: repository.Page{
			PageNum:   page.Page,
			PageSize:  page.Limit,
			SortBy:    page.SortBy,
			SortOrder: page.SortOrder,
		},
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Get 用户详情
// @Summary 用户详情（本人或管理员）
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (ctl *UserController) Get(c *gin.Context) {
	user, err := ctl.userService.Get(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"user": user})
}

// Update 更新资料
// @Summary 更新姓名/地址（本人或管理员）
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 ID"
// @Param request body dto.UpdateProfileRequest true "资料"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id} [put]
func (ctl *UserController) Update(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := ctl.userService.UpdateProfile(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}

// UpdatePassword 修改密码
// @Summary 修改密码（本人需验证旧密码，管理员代改免验）
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 ID"
// @Param request body dto.UpdatePasswordRequest true "密码"
// @Success 200 {object} map[string]interface{}
// @Router /users/{id}/password [put]
func (ctl *UserController) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := ctl.userService.UpdatePassword(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Password updated successfully", nil)
}

// Delete 删除用户
// @Summary 删除用户（管理员，不能删除自己，级联店铺与评分）
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (ctl *UserController) Delete(c *gin.Context) {
	err := ctl.userService.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}
