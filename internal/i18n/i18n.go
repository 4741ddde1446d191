package i18n

import (
	"fmt"
	"strings"

	"github.com/salesdesk-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认站点语言
const DefaultLocale = constants.LocaleThTH

// ResolveLocale 解析请求语言：优先 query lang，其次 Accept-Language，兜底默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(tag); lang != "" {
			return lang
		}
	}
	return DefaultLocale
}

// T 按语言取文案，未命中时回退英文，再回退 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[normalizeOrDefault(locale)]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取带占位符的文案并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	template := T(locale, key)
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}

func normalizeOrDefault(locale string) string {
	if lang := normalizeLocale(locale); lang != "" {
		return lang
	}
	return DefaultLocale
}

func normalizeLocale(raw string) string {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return ""
	}
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(tag, supported) {
			return supported
		}
		prefix := strings.SplitN(supported, "-", 2)[0]
		if strings.EqualFold(strings.SplitN(tag, "-", 2)[0], prefix) {
			return supported
		}
	}
	return ""
}
