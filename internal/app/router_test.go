package app_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/solivera/gatekeeper/internal/app"
	"github.com/solivera/gatekeeper/internal/auth"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{AppEnv: "development", AppRequestTimeout: 0}

	store := auth.NewRedisStore(client)
	service := auth.NewService(store, auth.NewHasher(), auth.NewSessionCodec(false))
	handler := auth.NewHandler(logger, service)

	return app.NewRouter(app.RouterParams{Logger: logger, Config: cfg, AuthHandler: handler})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/healthz")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", res.Body.String())
	}
}

func TestHomePage(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/")
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if ct := res.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html, got %s", ct)
	}
	if !strings.Contains(res.Body.String(), "Gatekeeper") {
		t.Fatalf("expected home page content")
	}
}

func TestHomeRedirect(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/home")
	if res.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestStaticAssets(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		target string
		ctype  string
	}{
		{"/request/css/style.css", "text/css"},
		{"/request/js/app.js", "application/javascript"},
		{"/request/images/logo.svg", "image/svg+xml"},
		{"/request/imagens/logo.svg", "image/svg+xml"},
	}
	for _, tc := range tests {
		res := get(t, router, tc.target)
		if res.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.target, res.Code)
		}
		if ct := res.Header().Get("Content-Type"); !strings.HasPrefix(ct, tc.ctype) {
			t.Fatalf("%s: expected %s, got %s", tc.target, tc.ctype, ct)
		}
		if cc := res.Header().Get("Cache-Control"); cc == "" {
			t.Fatalf("%s: expected Cache-Control header", tc.target)
		}
	}
}

func TestStaticAssetMissing(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/request/css/missing.css")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestUnmatchedRouteReturnsJSON(t *testing.T) {
	router := newTestRouter(t)

	res := get(t, router, "/definitely/not/here")
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"title":"Not Found"`) {
		t.Fatalf("expected problem body, got %s", res.Body.String())
	}
}
