package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 帖子分类常量
const (
	PostCategoryChisme  = "chisme"
	PostCategoryQueja   = "queja"
	PostCategoryHumor   = "humor"
	PostCategoryConsejo = "consejo"
	PostCategoryRandom  = "random"
)

// 支持的帖子分类顺序
var SupportedPostCategories = []string{
	PostCategoryChisme,
	PostCategoryQueja,
	PostCategoryHumor,
	PostCategoryConsejo,
	PostCategoryRandom,
}

// 帖子与回复长度限制常量
const (
	PostContentMinLen  = 10
	PostContentMaxLen  = 2000
	ReplyContentMinLen = 5
	ReplyContentMaxLen = 1000
)

// 点赞目标类型常量
const (
	LikeTargetPost  = "post"
	LikeTargetReply = "reply"
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeLogin    = "login"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest      = "bad_request"
	LoginLogFailReasonCaptchaRequired = "captcha_required"
	LoginLogFailReasonCaptchaInvalid  = "captcha_invalid"
	LoginLogFailReasonInvalidEmail    = "invalid_email"
	LoginLogFailReasonCodeInvalid     = "code_invalid"
	LoginLogFailReasonCodeLocked      = "code_locked"
	LoginLogFailReasonUserNotFound    = "user_not_found"
	LoginLogFailReasonUserDisabled    = "user_disabled"
	LoginLogFailReasonUserBanned      = "user_banned"
	LoginLogFailReasonInternalError   = "internal_error"
)

// 登录日志来源常量
const (
	LoginLogSourceWeb = "web"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneRequestCode = "request_code"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskVerifyCodeEmail  = "auth:verify_code_email"
	TaskCounterReconcile = "counter:reconcile"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "marron"
)

// 站点语言常量
const (
	LocaleEsES = "es-ES"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEsES, LocaleEnUS}

// 匿名用户名前缀常量
const (
	DisplayNamePrefix = "Marrón"
)

// 序号分配键常量
const (
	SequenceUserNumber = "user_number"
)
