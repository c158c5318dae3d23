package service

import "errors"

// 认证与验证码相关错误
var (
	ErrInvalidEmail               = errors.New("invalid email address")
	ErrInvalidVerifyPurpose       = errors.New("invalid verify purpose")
	ErrEmailExists                = errors.New("email already registered")
	ErrEmailNotFound              = errors.New("email not registered")
	ErrVerifyCodeInvalid          = errors.New("verify code invalid or expired")
	ErrVerifyCodeExpired          = errors.New("verify code expired")
	ErrVerifyCodeAttemptsExceeded = errors.New("verify code attempts exceeded")
	ErrVerifyCodeTooFrequent      = errors.New("verify code requested too frequently")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrUserDisabled               = errors.New("user disabled")
	ErrUserBanned                 = errors.New("user banned")
	ErrNotFound                   = errors.New("record not found")
	ErrWeakPassword               = errors.New("password too weak")
	ErrInvalidPassword            = errors.New("invalid password")
)

// 邮件投递相关错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 人机校验相关错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 内容相关错误
var (
	ErrCategoryInvalid      = errors.New("unknown post category")
	ErrPostContentLength    = errors.New("post content length out of range")
	ErrReplyContentLength   = errors.New("reply content length out of range")
	ErrPostNotFound         = errors.New("post not found")
	ErrReplyNotFound        = errors.New("reply not found")
	ErrLikeTargetInvalid    = errors.New("invalid like target")
	ErrForbidden            = errors.New("operation not allowed")
)
