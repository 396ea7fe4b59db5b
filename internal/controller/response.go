package controller

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"store_rating_api/internal/api/dto"
	"store_rating_api/internal/service"
)

// ==================== 响应封装 ====================

// respond 成功响应 {success:true, message?, data?}
func respond(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail 失败响应 {success:false, message}
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// failValidation 字段级校验失败
func failValidation(c *gin.Context, errs []dto.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// ==================== 绑定错误 ====================

// bindError 请求体/查询参数绑定失败的统一出口
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrs := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrs = append(fieldErrs, dto.FieldError{
				Field:   lowerFirst(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		failValidation(c, fieldErrs)
		return
	}
	fail(c, http.StatusBadRequest, "Invalid request body")
}

// validationMessage 按校验标签生成文案
func validationMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return capFirst(field) + " is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return capFirst(field) + " must be at least " + fe.Param() + " characters long"
		}
		return capFirst(field) + " must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return capFirst(field) + " must not exceed " + fe.Param() + " characters"
		}
		return capFirst(field) + " must not exceed " + fe.Param()
	case "oneof":
		return capFirst(field) + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return capFirst(field) + " is invalid"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func capFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// ==================== 业务错误映射 ====================

// handleServiceError 业务错误 -> HTTP 状态码与响应
// 未识别的错误按 500 处理，对外只给泛化文案
func handleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		failValidation(c, verr.Errors)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrAdminSignupDisabled),
		errors.Is(err, service.ErrProfileAccess),
		errors.Is(err, service.ErrProfileUpdate),
		errors.Is(err, service.ErrPasswordUpdate),
		errors.Is(err, service.ErrRatingsAccess),
		errors.Is(err, service.ErrRatingDelete):
		fail(c, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrStoreNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrOwnerNotFound):
		fail(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrStoreEmailTaken),
		errors.Is(err, service.ErrOwnerRole),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrSelfRoleChange),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrWrongPassword):
		fail(c, http.StatusBadRequest, err.Error())

	default:
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
