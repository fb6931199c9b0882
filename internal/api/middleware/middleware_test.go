package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnhub/backend/config"
	"learnhub/backend/internal/model"
	"learnhub/backend/pkg/jwt"
	"learnhub/backend/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func newTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), zap.NewNop())
}

func protectedEngine(jwtMgr *jwt.Manager, rdb *redis.Client, capability model.Capability) *gin.Engine {
	r := gin.New()
	r.GET("/protected",
		JWTAuth(jwtMgr, rdb, zap.NewNop()),
		RequireCapability(capability),
		func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(ContextUserID))
		},
	)
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	jwtMgr := newTestJWT()
	r := protectedEngine(jwtMgr, nil, model.CapCompleteChapter)

	access, _ := jwtMgr.GenerateAccessToken("s1", "student")
	refresh, _ := jwtMgr.GenerateRefreshToken("s1", "student")
	mentor, _ := jwtMgr.GenerateAccessToken("m1", "mentor")

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"缺少 Token", "", http.StatusUnauthorized},
		{"无效 Token", "garbage", http.StatusUnauthorized},
		{"Refresh Token 不可访问", refresh, http.StatusUnauthorized},
		{"角色无该能力", mentor, http.StatusForbidden},
		{"合法学员", access, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(r, "/protected", tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestJWTAuth_Blacklisted(t *testing.T) {
	jwtMgr := newTestJWT()
	rdb := newTestRedis(t)
	r := protectedEngine(jwtMgr, rdb, model.CapCompleteChapter)

	access, _ := jwtMgr.GenerateAccessToken("s1", "student")
	require.Equal(t, http.StatusOK, doGet(r, "/protected", access).Code)

	claims, err := jwtMgr.ParseToken(access)
	require.NoError(t, err)
	require.NoError(t, rdb.BlacklistToken(context.Background(), claims.ID, time.Minute))

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", access).Code)
}

func TestRateLimit(t *testing.T) {
	rdb := newTestRedis(t)
	r := gin.New()
	r.POST("/login", RateLimit(rdb, 2, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/login", RateLimit(nil, 1, time.Minute, zap.NewNop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 32))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("a", 100))
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36, "超长 ID 应被替换为 UUID")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
