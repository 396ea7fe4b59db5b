package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/repository"
	"store_rating_api/internal/service"
)

// ==================== StoreController 店铺控制器 ====================

// StoreController 店铺接口
type StoreController struct {
	storeService *service.StoreService
}

// NewStoreController 创建店铺控制器
func NewStoreController(storeService *service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// List 店铺列表
// @Summary 店铺列表（公开），每条都带 avgRating
// @Tags Stores
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param sortBy query string false "排序字段，支持 avgRating"
// @Param search query string false "按 name/email/address 模糊搜索"
// @Success 200 {object} map[string]interface{}
// @Router /stores [get]
func (ctl *StoreController) List(c *gin.Context) {
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

	resp, err := ctl.storeService.List(c.Request.Context(), repository.StoreFilter{
		Search: search.Search,
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

// ListMine 店主名下店铺
// @Summary 当前店主的店铺列表
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /stores/mine [get]
func (ctl *StoreController) ListMine(c *gin.Context) {
	stores, err := ctl.storeService.ListOwned(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"stores": stores})
}

// Get 店铺详情
// @Summary 店铺详情（公开）
// @Tags Stores
// @Produce json
// @Param id path string true "店铺 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /stores/{id} [get]
func (ctl *StoreController) Get(c *gin.Context) {
	store, err := ctl.storeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"store": store})
}

// Update 更新店铺
// @Summary 更新店铺（店主本人或管理员，归属由中间件校验）
// @Tags Stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "店铺 ID"
// @Param request body dto.UpdateStoreRequest true "店铺信息"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /stores/{id} [put]
func (ctl *StoreController) Update(c *gin.Context) {
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	store, err := ctl.storeService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Store updated successfully", gin.H{"store": store})
}

// Delete 删除店铺
// @Summary 删除店铺（管理员，评分级联删除）
// @Tags Stores
// @Produce json
// @Security BearerAuth
// @Param id path string true "店铺 ID"
// @Success 200 {object} map[string]interface{}
// @Router /stores/{id} [delete]
func (ctl *StoreController) Delete(c *gin.Context) {
	if err := ctl.storeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Store deleted successfully", nil)
}
