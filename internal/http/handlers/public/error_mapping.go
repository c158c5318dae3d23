package public

import (
	"errors"

	handlershared "github.com/marron-next/internal/http/handlers/shared"
	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var verifyCodeCommonErrorRules = []mappedHandlerError{
	{target: service.ErrVerifyCodeInvalid, code: response.CodeBadRequest, key: "error.verify_code_invalid"},
	{target: service.ErrVerifyCodeExpired, code: response.CodeBadRequest, key: "error.verify_code_expired"},
	{target: service.ErrVerifyCodeAttemptsExceeded, code: response.CodeBadRequest, key: "error.verify_code_attempts_exceeded"},
}

var verifyRegisterErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
}, verifyCodeCommonErrorRules)

var verifyLoginErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailNotFound, code: response.CodeNotFound, key: "error.email_not_found"},
	{target: service.ErrUserBanned, code: response.CodeForbidden, key: "error.user_banned"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, key: "error.user_disabled"},
}, verifyCodeCommonErrorRules)

var postWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, key: "error.category_invalid"},
	{target: service.ErrPostContentLength, code: response.CodeBadRequest, key: "error.post_content_length"},
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
}

var replyWriteErrorRules = []mappedHandlerError{
	{target: service.ErrReplyContentLength, code: response.CodeBadRequest, key: "error.reply_content_length"},
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrReplyNotFound, code: response.CodeNotFound, key: "error.reply_not_found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
}

var likeToggleErrorRules = []mappedHandlerError{
	{target: service.ErrLikeTargetInvalid, code: response.CodeBadRequest, key: "error.like_target_invalid"},
	{target: service.ErrPostNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrReplyNotFound, code: response.CodeNotFound, key: "error.reply_not_found"},
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
