package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stagebook/internal/shared/config"
	"stagebook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

func testConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:                 true,
		WindowDuration:          time.Minute,
		DefaultRequests:         60,
		PublicRequests:          100,
		BookingRequests:         30,
		BookingCriticalRequests: 10,
		AdminRequests:           200,
		StatisticsRequests:      30,
		HealthRequests:          300,
		WhitelistedIPs:          []string{"10.0.0.1"},
	}
}

func newTestLimiter(t *testing.T) (*RateLimiter, redismock.ClientMock) {
	t.Helper()
	db, mockRedis := redismock.NewClientMock()
	limiter := NewRateLimiter(db, testConfig())
	limiter.now = func() time.Time { return testNow }
	limiter.seq = func() string { return "1" }
	return limiter, mockRedis
}

func expectWindow(mockRedis redismock.ClientMock, key string, limit int) *redismock.ExpectedCmd {
	member := "1736078400000000000-1"
	return mockRedis.ExpectEvalSha(slidingWindowScript.Hash(), []string{key},
		testNow.Add(-time.Minute).UnixMilli(),
		testNow.UnixMilli(),
		limit,
		time.Minute.Milliseconds(),
		member,
	)
}

func TestIsAllowed_UnderLimit(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)
	key := BuildKey(RateLimitTypeBookingCritical, "192.168.1.20")
	expectWindow(mockRedis, key, 10).SetVal([]interface{}{int64(3), int64(7)})

	result, err := limiter.IsAllowed(context.Background(), "192.168.1.20", RateLimitTypeBookingCritical)

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 7, result.Remaining)
	assert.Equal(t, testNow.Add(time.Minute).Unix(), result.ResetTime)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIsAllowed_OverLimit(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)
	key := BuildKey(RateLimitTypeBookingCritical, "192.168.1.20")
	expectWindow(mockRedis, key, 10).SetVal([]interface{}{int64(11), int64(0)})

	result, err := limiter.IsAllowed(context.Background(), "192.168.1.20", RateLimitTypeBookingCritical)

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestIsAllowed_RedisError(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)
	key := BuildKey(RateLimitTypePublic, "192.168.1.20")
	expectWindow(mockRedis, key, 100).SetErr(errors.New("connection refused"))

	_, err := limiter.IsAllowed(context.Background(), "192.168.1.20", RateLimitTypePublic)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsAllowed_WhitelistedAndDisabled(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)

	result, err := limiter.IsAllowed(context.Background(), "10.0.0.1", RateLimitTypeAdmin)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 200, result.Remaining)

	limiter.config.Enabled = false
	result, err = limiter.IsAllowed(context.Background(), "192.168.1.20", RateLimitTypeAdmin)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "stagebook:rate_limit:booking:1.2.3.4", BuildKey(RateLimitTypeBooking, "1.2.3.4"))
}

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodGet, "/api/v1/admin/performances/:id/bookings", RateLimitTypeAdmin},
		{http.MethodGet, "/api/v1/admin/performances/:id/statistics/bookings", RateLimitTypeAdmin},
		{http.MethodGet, "/api/v1/performances/:id/statistics/seats", RateLimitTypeStatistics},
		{http.MethodPost, "/api/v1/bookings", RateLimitTypeBookingCritical},
		{http.MethodPost, "/api/v1/bookings/:id/cancel", RateLimitTypeBookingCritical},
		{http.MethodGet, "/api/v1/bookings/me", RateLimitTypeBooking},
		{http.MethodGet, "/api/v1/performances/:id/seats", RateLimitTypeBooking},
		{http.MethodGet, "/api/v1/performances", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/venues/:id/layout", RateLimitTypePublic},
		{http.MethodGet, "/swagger/*any", RateLimitTypeDefault},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, getRateLimitType(tc.method, tc.path), tc.method+" "+tc.path)
	}
}

func newTestRouter(limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(limiter, logger.Discard()))
	r.POST("/api/v1/bookings", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func TestMiddleware_Rejects(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)
	expectWindow(mockRedis, BuildKey(RateLimitTypeBookingCritical, "192.168.1.20"), 10).
		SetVal([]interface{}{int64(11), int64(0)})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("X-Forwarded-For", "192.168.1.20, 10.1.1.1")
	w := httptest.NewRecorder()
	newTestRouter(limiter).ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_FailsOpenOnRedisError(t *testing.T) {
	limiter, mockRedis := newTestLimiter(t)
	expectWindow(mockRedis, BuildKey(RateLimitTypeBookingCritical, "192.168.1.20"), 10).
		SetErr(errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
	req.Header.Set("X-Real-IP", "192.168.1.20")
	w := httptest.NewRecorder()
	newTestRouter(limiter).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
