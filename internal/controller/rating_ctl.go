package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/middleware"
	"store_rating_api/internal/repository"
	"store_rating_api/internal/service"
)

// ==================== RatingController 评分控制器 ====================

// RatingController 评分接口
type RatingController struct {
	ratingService *service.RatingService
}

// NewRatingController 创建评分控制器
func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{ratingService: ratingService}
}

// Submit 提交评分
// @Summary 提交评分（NORMAL_USER，同店覆盖旧评分）
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitRatingRequest true "评分"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /ratings [post]
func (ctl *RatingController) Submit(c *gin.Context) {
	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 作者身份只认 Token，请求体里的任何用户字段都不采信
	resp, created, err := ctl.ratingService.Submit(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, service.SubmitMessage(created), resp)
}

// ListByStore 店铺评分列表
// @Summary 某店铺收到的评分
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param storeId path string true "店铺 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /ratings/store/{storeId} [get]
func (ctl *RatingController) ListByStore(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctl.ratingService.ListByStore(c.Request.Context(), c.Param("storeId"), repository.Page{
		PageNum:   page.Page,
		PageSize:  page.Limit,
		SortBy:    page.SortBy,
		SortOrder: page.SortOrder,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// ListByUser 用户评分列表
// @Summary 某用户提交过的评分（本人或管理员）
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /ratings/user/{userId} [get]
func (ctl *RatingController) ListByUser(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	resp, err := ctl.ratingService.ListByUser(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("userId"), repository.Page{
			PageNum:   page.Page,
			PageSize:  page.Limit,
			SortBy:    page.SortBy,
			SortOrder: page.SortOrder,
		})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "", resp)
}

// Delete 删除评分
// @Summary 删除评分（作者本人或管理员）
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param id path string true "评分 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /ratings/{id} [delete]
func (ctl *RatingController) Delete(c *gin.Context) {
	err := ctl.ratingService.Delete(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetRole(c), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Rating deleted successfully", nil)
}
