package mw

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct{}

func (fakeVerifier) Verify(raw string) (string, error) {
	if raw == "good" {
		return "admin", nil
	}
	return "", errors.New("bad token")
}

func TestRequireBearer(t *testing.T) {
	r := gin.New()
	r.GET("/private", RequireBearer(fakeVerifier{}), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})

	testCases := []struct {
		name         string
		header       string
		expectStatus int
		expectBody   string
	}{
		{name: "Valid token", header: "Bearer good", expectStatus: http.StatusOK, expectBody: "admin"},
		{name: "Missing header", expectStatus: http.StatusUnauthorized, expectBody: `{"error":"missing bearer token"}`},
		{name: "Wrong scheme", header: "Basic good", expectStatus: http.StatusUnauthorized, expectBody: `{"error":"missing bearer token"}`},
		{name: "Invalid token", header: "Bearer bad", expectStatus: http.StatusUnauthorized, expectBody: `{"error":"invalid token"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.expectStatus, w.Code)
			assert.Equal(t, tc.expectBody, w.Body.String())
		})
	}
}

func TestCache_ServesRepeatedGetAndFlushesOnWrite(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	hits := 0

	r := gin.New()
	r.Use(InvalidateOnWrite(store))
	r.GET("/parking", Cache(store, time.Minute), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	})
	r.POST("/parking", func(c *gin.Context) { c.Status(http.StatusCreated) })

	get := func(auth string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/parking", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		r.ServeHTTP(w, req)
		return w
	}

	first := get("")
	second := get("")
	assert.JSONEq(t, `{"hits":1}`, first.Body.String())
	assert.JSONEq(t, `{"hits":1}`, second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "application/json; charset=utf-8", second.Header().Get("Content-Type"))

	authed := get("Bearer x")
	assert.JSONEq(t, `{"hits":2}`, authed.Body.String(), "authorized requests bypass the cache")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/parking", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, store.ItemCount())

	assert.JSONEq(t, `{"hits":3}`, get("").Body.String())
}

func TestCache_KeysOnPathAndQuery(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)

	r := gin.New()
	r.GET("/parking/:id", Cache(store, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "page": c.Query("page")})
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		return w
	}

	assert.JSONEq(t, `{"id":"1","page":""}`, get("/parking/1").Body.String())
	second := get("/parking/2")
	assert.JSONEq(t, `{"id":"2","page":""}`, second.Body.String())
	assert.Empty(t, second.Header().Get("X-Cache"))

	assert.JSONEq(t, `{"id":"1","page":"2"}`, get("/parking/1?page=2").Body.String())

	again := get("/parking/1")
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"1","page":""}`, again.Body.String())
	assert.Equal(t, 3, store.ItemCount())
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "burst exhausted")
	assert.True(t, limiter.Allow("10.0.0.2"), "other IPs have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "one token refilled")

	now = now.Add(6 * time.Minute)
	limiter.Allow("10.0.0.3")
	assert.Equal(t, 2, limiter.Sweep(5*time.Minute))
	assert.Len(t, limiter.visitors, 1)
}

func TestIPRateLimiter_ForgetsIdleVisitorsOnAllow(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	now = now.Add(visitorIdleTimeout + time.Second)
	limiter.Allow("10.0.0.2")

	assert.NotContains(t, limiter.visitors, "10.0.0.1")
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(NewIPRateLimiter(rate.Limit(0.001), 1)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
