package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/salesdesk-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c
}

func TestResolveLocaleQueryOverridesHeader(t *testing.T) {
	c := newTestContext(t)
	c.Request = httptest.NewRequest("GET", "/?lang=en-US", nil)
	c.Request.Header.Set("Accept-Language", "th-TH,th;q=0.9")
	if got := ResolveLocale(c); got != constants.LocaleEnUS {
		t.Fatalf("expected en-US, got %s", got)
	}
}

func TestResolveLocaleAcceptLanguagePrefix(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("Accept-Language", "en;q=0.8, th")
	if got := ResolveLocale(c); got != constants.LocaleEnUS {
		t.Fatalf("expected en-US from first header entry, got %s", got)
	}
}

func TestResolveLocaleFallsBackToDefault(t *testing.T) {
	c := newTestContext(t)
	c.Request.Header.Set("Accept-Language", "ja-JP")
	if got := ResolveLocale(c); got != DefaultLocale {
		t.Fatalf("expected default locale, got %s", got)
	}
}

func TestTFallsBackToEnglishThenKey(t *testing.T) {
	if got := T("ja-JP", "error.order_not_found"); got != catalog[constants.LocaleEnUS]["error.order_not_found"] {
		t.Fatalf("expected english fallback, got %s", got)
	}
	if got := T(constants.LocaleEnUS, "error.nonexistent_key"); got != "error.nonexistent_key" {
		t.Fatalf("expected raw key fallback, got %s", got)
	}
}

func TestSprintfFormatsArguments(t *testing.T) {
	got := Sprintf(constants.LocaleEnUS, "error.rate_limited", 30)
	if got != "too many requests, retry in 30 seconds" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestCatalogKeysMatchAcrossLocales(t *testing.T) {
	en := catalog[constants.LocaleEnUS]
	th := catalog[constants.LocaleThTH]
	if len(en) != len(th) {
		t.Fatalf("catalog size mismatch: en=%d th=%d", len(en), len(th))
	}
	for key := range en {
		if _, ok := th[key]; !ok {
			t.Fatalf("thai catalog missing key %s", key)
		}
	}
}
