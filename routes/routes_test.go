package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/controllers"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/middleware"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository/memory"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, _ := memory.NewStore()
	require.NoError(t, services.Provision(context.Background(), store, "admin", "secret"))

	opts.JWTSecret = []byte(testSecret)
	r := gin.New()
	InitializeRoutes(r, controllers.NewDefault(store, testSecret, nil), opts)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			return c
		}
	}
	t.Fatal("no token cookie")
	return nil
}

func TestSPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	r := newRouter(t, Options{APIPrefix: "/api", StaticDir: dir})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/assets/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/invoices/print/42", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "app")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil))
	assert.NotContains(t, w.Body.String(), "root:", "paths cannot escape the static dir")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Error"`)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/somewhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSPAFallback_NoBundle(t *testing.T) {
	r := newRouter(t, Options{APIPrefix: "/api", StaticDir: t.TempDir()})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := newRouter(t, Options{APIPrefix: "/api", AuthRequired: true})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := login(t, r)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.AddCookie(cookie)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code, "health stays public")
}

func TestAuthOptional(t *testing.T) {
	r := newRouter(t, Options{APIPrefix: "/api"})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLoginRateLimited(t *testing.T) {
	r := newRouter(t, Options{APIPrefix: "/api", LoginLimiter: middleware.NewLoginRateLimiter(3)})

	codes := []int{}
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		codes = append(codes, serve(r, req).Code)
	}
	assert.Equal(t, []int{200, 200, 200, http.StatusTooManyRequests}, codes)
}

func TestCustomPrefix(t *testing.T) {
	r := newRouter(t, Options{APIPrefix: "v2/"})
	w := serve(r, httptest.NewRequest(http.MethodGet, "/v2/customers", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
