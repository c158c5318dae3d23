package i18n

import (
	"fmt"
	"strings"

	"github.com/marron-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 语言常量（与 constants 保持一致）
const (
	LocaleES = constants.LocaleEsES
	LocaleEN = constants.LocaleEnUS
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleES

// Normalize 归一化语言标识，未识别时返回默认语言
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case l == "":
		return DefaultLocale
	case strings.HasPrefix(l, "es"):
		return LocaleES
	case strings.HasPrefix(l, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 解析请求语言：查询参数优先，其次请求头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if q := strings.TrimSpace(c.Query("locale")); q != "" {
		return Normalize(q)
	}
	if h := strings.TrimSpace(c.GetHeader("X-Locale")); h != "" {
		return Normalize(h)
	}
	if accept := strings.TrimSpace(c.GetHeader("Accept-Language")); accept != "" {
		first := accept
		if idx := strings.IndexAny(accept, ",;"); idx >= 0 {
			first = accept[:idx]
		}
		return Normalize(first)
	}
	return DefaultLocale
}

// T 按语言翻译消息键，缺失时回退默认语言，仍缺失时返回键本身
func T(locale, key string) string {
	normalized := Normalize(locale)
	if msg, ok := messages[normalized][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
