package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: LocaleES},
		{in: "es", want: LocaleES},
		{in: "ES-MX", want: LocaleES},
		{in: "en", want: LocaleEN},
		{in: "en-GB", want: LocaleEN},
		{in: "fr-FR", want: LocaleES},
		{in: "  en-US  ", want: LocaleEN},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveLocalePriority(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/api/v1/public/posts", nil)
		return c
	}

	// 查询参数优先于请求头
	c := newContext()
	c.Request.URL.RawQuery = "locale=en"
	c.Request.Header.Set("X-Locale", "es")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("query param should win, got %q", got)
	}

	c = newContext()
	c.Request.Header.Set("X-Locale", "en")
	c.Request.Header.Set("Accept-Language", "es-ES,es;q=0.9")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("X-Locale should win over Accept-Language, got %q", got)
	}

	c = newContext()
	c.Request.Header.Set("Accept-Language", "en-GB,en;q=0.9,es;q=0.5")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("Accept-Language first tag should be used, got %q", got)
	}

	c = newContext()
	if got := ResolveLocale(c); got != DefaultLocale {
		t.Fatalf("bare request should use default locale, got %q", got)
	}
}

func TestTranslationFallback(t *testing.T) {
	if got := T(LocaleEN, "error.not_found"); got == "" || got == "error.not_found" {
		t.Fatalf("known key should translate, got %q", got)
	}
	// 未识别语言回退默认语言
	if got, want := T("fr-FR", "error.not_found"), T(LocaleES, "error.not_found"); got != want {
		t.Fatalf("unknown locale should fall back to Spanish, got %q want %q", got, want)
	}
	// 未知键返回键本身
	if got := T(LocaleES, "error.no_existe"); got != "error.no_existe" {
		t.Fatalf("unknown key should return the key, got %q", got)
	}
}

func TestSprintfFormatsArgs(t *testing.T) {
	got := Sprintf(LocaleES, "error.rate_limited", 30)
	if got != "Demasiadas solicitudes, inténtalo en 30 segundos" {
		t.Fatalf("formatted message unexpected: %q", got)
	}
	if got := Sprintf(LocaleES, "error.not_found"); got != T(LocaleES, "error.not_found") {
		t.Fatalf("no-arg Sprintf should match T, got %q", got)
	}
}
