package public

import (
	"errors"
	"strings"

	"github.com/marron-next/internal/constants"
	"github.com/marron-next/internal/http/response"
	"github.com/marron-next/internal/i18n"
	"github.com/marron-next/internal/models"
	"github.com/marron-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RequestVerifyCodeRequest 请求邮箱验证码
type RequestVerifyCodeRequest struct {
	Email          string                `json:"email" binding:"required"`
	Purpose        string                `json:"purpose" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// RequestVerifyCode 发送注册/登录验证码
func (h *Handler) RequestVerifyCode(c *gin.Context) {
	var req RequestVerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneRequestCode, req.CaptchaPayload.toServicePayload()); captchaErr != nil {
			switch {
			case errors.Is(captchaErr, service.ErrCaptchaRequired):
				respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
			case errors.Is(captchaErr, service.ErrCaptchaInvalid):
				respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
			default:
				respondError(c, response.CodeInternal, "error.captcha_unavailable", captchaErr)
			}
			return
		}
	}

	locale := i18n.ResolveLocale(c)
	if err := h.UserAuthService.SendVerifyCode(req.Email, req.Purpose, locale); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.email_invalid", nil)
		case errors.Is(err, service.ErrInvalidVerifyPurpose):
			respondError(c, response.CodeBadRequest, "error.verify_purpose_invalid", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "error.email_exists", nil)
		case errors.Is(err, service.ErrEmailNotFound):
			respondError(c, response.CodeNotFound, "error.email_not_found", nil)
		case errors.Is(err, service.ErrUserBanned):
			respondError(c, response.CodeForbidden, "error.user_banned", nil)
		case errors.Is(err, service.ErrUserDisabled):
			respondError(c, response.CodeForbidden, "error.user_disabled", nil)
		case errors.Is(err, service.ErrVerifyCodeTooFrequent):
			msg := i18n.Sprintf(locale, "error.verify_code_too_frequent", h.resendIntervalSeconds())
			respondErrorWithMsg(c, response.CodeTooManyRequests, msg, nil)
		case errors.Is(err, service.ErrEmailRecipientRejected):
			respondError(c, response.CodeBadRequest, "error.email_recipient_not_found", nil)
		case errors.Is(err, service.ErrEmailServiceDisabled),
			errors.Is(err, service.ErrEmailServiceNotConfigured):
			respondError(c, response.CodeInternal, "error.email_service_not_configured", err)
		default:
			respondError(c, response.CodeInternal, "error.send_verify_code_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// VerifyCodeRequest 验证码提交请求
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyRegister 校验验证码并完成注册
func (h *Handler) VerifyRegister(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.VerifyRegister(req.Email, strings.TrimSpace(req.Code))
	if err != nil {
		respondWithMappedError(c, err, verifyRegisterErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	h.recordUserLogin(c, user.Email, user.ID, constants.LoginLogStatusSuccess, "")
	response.Success(c, gin.H{
		"user":       userProfileResponse(user),
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// VerifyLogin 校验验证码并完成登录
func (h *Handler) VerifyLogin(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.VerifyLogin(req.Email, strings.TrimSpace(req.Code))
	if err != nil {
		h.recordUserLogin(c, req.Email, 0, constants.LoginLogStatusFailed, loginFailReason(err))
		respondWithMappedError(c, err, verifyLoginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	h.recordUserLogin(c, user.Email, user.ID, constants.LoginLogStatusSuccess, "")
	response.Success(c, gin.H{
		"user":       userProfileResponse(user),
		"token":      token,
		"expires_at": expiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetCurrentUser 获取当前用户信息
func (h *Handler) GetCurrentUser(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetUserByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	response.Success(c, userProfileResponse(user))
}

// UpdateUserLocaleRequest 更新界面语言请求
type UpdateUserLocaleRequest struct {
	Locale string `json:"locale" binding:"required"`
}

// UpdateUserLocale 更新当前用户界面语言
func (h *Handler) UpdateUserLocale(c *gin.Context) {
	id, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateUserLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateLocale(id, req.Locale)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.user_update_failed", err)
		}
		return
	}
	response.Success(c, userProfileResponse(user))
}

func userProfileResponse(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"user_number":   user.UserNumber,
		"display_name":  user.DisplayName,
		"locale":        user.Locale,
		"created_at":    user.CreatedAt,
		"last_login_at": user.LastLoginAt,
	}
}

func loginFailReason(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return constants.LoginLogFailReasonInvalidEmail
	case errors.Is(err, service.ErrEmailNotFound):
		return constants.LoginLogFailReasonUserNotFound
	case errors.Is(err, service.ErrUserBanned):
		return constants.LoginLogFailReasonUserBanned
	case errors.Is(err, service.ErrUserDisabled):
		return constants.LoginLogFailReasonUserDisabled
	case errors.Is(err, service.ErrVerifyCodeAttemptsExceeded):
		return constants.LoginLogFailReasonCodeLocked
	case errors.Is(err, service.ErrVerifyCodeInvalid), errors.Is(err, service.ErrVerifyCodeExpired):
		return constants.LoginLogFailReasonCodeInvalid
	default:
		return constants.LoginLogFailReasonInternalError
	}
}

func (h *Handler) resendIntervalSeconds() int {
	if h.Config != nil && h.Config.Email.VerifyCode.SendIntervalSeconds > 0 {
		return h.Config.Email.VerifyCode.SendIntervalSeconds
	}
	return 60
}

func (h *Handler) recordUserLogin(c *gin.Context, email string, userID uint, status, failReason string) {
	if h == nil || h.UserLoginLogService == nil {
		return
	}
	requestID := ""
	if c != nil {
		if rid, ok := c.Get("request_id"); ok {
			if value, ok := rid.(string); ok {
				requestID = strings.TrimSpace(value)
			}
		}
	}
	_ = h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:      userID,
		Email:       email,
		Status:      status,
		FailReason:  failReason,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.GetHeader("User-Agent"),
		LoginSource: constants.LoginLogSourceWeb,
		RequestID:   requestID,
	})
}
