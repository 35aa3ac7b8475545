package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/neurohealth/pkg/httpx"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestIPKeyExtractor(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:4411"
		require.Equal(t, "10.0.0.7", httpx.IPKeyExtractor(req))
	})

	t.Run("forwarded for wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:4411"
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		req.Header.Set("X-Real-IP", "198.51.100.2")
		require.Equal(t, "203.0.113.9", httpx.IPKeyExtractor(req))
	})

	t.Run("real ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "198.51.100.2")
		require.Equal(t, "198.51.100.2", httpx.IPKeyExtractor(req))
	})
}

func TestFormFieldKeyExtractor(t *testing.T) {
	extract := httpx.FormFieldKeyExtractor("email")

	req := httptest.NewRequest(http.MethodPost, "/usuarios/login?email=Ana@Example.com", nil)
	require.Equal(t, "ana@example.com", extract(req))

	form := url.Values{"email": {"luis@example.com"}}
	req = httptest.NewRequest(http.MethodPost, "/usuarios/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, "luis@example.com", extract(req))

	req = httptest.NewRequest(http.MethodPost, "/usuarios/login", nil)
	require.Empty(t, extract(req))
}

func TestCompositeKeyExtractorSkipsEmpty(t *testing.T) {
	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.FormFieldKeyExtractor("email"))

	req := httptest.NewRequest(http.MethodPost, "/?email=ana@example.com", nil)
	req.RemoteAddr = "10.0.0.7:1"
	require.Equal(t, "10.0.0.7:ana@example.com", extract(req))

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "10.0.0.7:1"
	require.Equal(t, "10.0.0.7", extract(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	t.Run("blocks after burst", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/citas", nil)
			req.RemoteAddr = "10.0.0.1:1"
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/citas", nil)
		req.RemoteAddr = "10.0.0.1:1"
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/citas", nil)
		req.RemoteAddr = "10.0.0.2:1"
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("login keyed by email", func(t *testing.T) {
		h := httpx.RateLimitByIPAndFormField(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}, "email")(okHandler)

		do := func(email string) int {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/usuarios/login?email="+email, nil)
			req.RemoteAddr = "10.0.0.1:1"
			h.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, do("ana@example.com"))
		require.Equal(t, http.StatusTooManyRequests, do("ana@example.com"))
		require.Equal(t, http.StatusOK, do("luis@example.com"))
	})

	t.Run("empty key passes", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

func TestDefaultRateLimitsAreOrdered(t *testing.T) {
	l := httpx.DefaultRateLimits()
	require.Less(t, l.Strict.RequestsPerWindow, l.Moderate.RequestsPerWindow)
	require.Less(t, l.Moderate.RequestsPerWindow, l.Lenient.RequestsPerWindow)
	require.Less(t, l.Lenient.RequestsPerWindow, l.Public.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("UNSET", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_BURST", "60")

		got := httpx.ParseRateLimitFromEnv("TEST", def)
		require.Equal(t, 50, got.RequestsPerWindow)
		require.Equal(t, 30*time.Second, got.Window)
		require.Equal(t, 60, got.Burst)
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_BAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_BAD_WINDOW_SEC", "-5")
		t.Setenv("RATELIMIT_BAD_BURST", "0")
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("BAD", def))
	})

	t.Run("profiles", func(t *testing.T) {
		t.Setenv("RATELIMIT_STRICT_REQUESTS", "3")
		l := httpx.RateLimitsFromEnv()
		require.Equal(t, 3, l.Strict.RequestsPerWindow)
		require.Equal(t, httpx.DefaultRateLimits().Lenient, l.Lenient)
	})
}
