package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"candleshop-backend/config"
	"candleshop-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTokens is a mock SessionTokenService.
type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Issue() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokens) Validate(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockTokens) TTL() time.Duration {
	return time.Hour
}

func TestSessionMiddleware(t *testing.T) {
	testCases := []struct {
		name          string
		header        string
		cookie        string
		setupMock     func(m *MockTokens)
		wantStatus    int
		wantSessionID string
		wantNewToken  bool
	}{
		{
			name:   "valid header token is reused",
			header: "good",
			setupMock: func(m *MockTokens) {
				m.On("Validate", "good").Return("sess-1", nil)
			},
			wantStatus:    http.StatusOK,
			wantSessionID: "sess-1",
		},
		{
			name:   "valid cookie token is reused",
			cookie: "good-cookie",
			setupMock: func(m *MockTokens) {
				m.On("Validate", "good-cookie").Return("sess-2", nil)
			},
			wantStatus:    http.StatusOK,
			wantSessionID: "sess-2",
		},
		{
			name: "no token starts a session",
			setupMock: func(m *MockTokens) {
				m.On("Issue").Return("sess-new", "tok-new", nil)
			},
			wantStatus:    http.StatusOK,
			wantSessionID: "sess-new",
			wantNewToken:  true,
		},
		{
			name:   "invalid token starts a session",
			header: "forged",
			setupMock: func(m *MockTokens) {
				m.On("Validate", "forged").Return("", errors.New("bad signature"))
				m.On("Issue").Return("sess-new", "tok-new", nil)
			},
			wantStatus:    http.StatusOK,
			wantSessionID: "sess-new",
			wantNewToken:  true,
		},
		{
			name: "issue failure",
			setupMock: func(m *MockTokens) {
				m.On("Issue").Return("", "", errors.New("no secret"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			tokens := new(MockTokens)
			tc.setupMock(tokens)

			var gotSessionID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSessionID, _ = domain.SessionIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tc.header != "" {
				req.Header.Set(SessionTokenHeader, tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()

			// when
			NewSessionMiddleware(tokens, false)(next).ServeHTTP(rec, req)

			// then
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantSessionID, gotSessionID)
			if tc.wantNewToken {
				assert.Equal(t, "tok-new", rec.Header().Get(SessionTokenHeader))
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, SessionCookieName, cookies[0].Name)
				assert.True(t, cookies[0].HttpOnly)
			} else {
				assert.Empty(t, rec.Header().Get(SessionTokenHeader))
			}
			tokens.AssertExpectations(t)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	cfg := &config.Config{AllowedOrigin: "https://shop.example, http://localhost:3000"}
	handler := NewCORSMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), SessionTokenHeader)
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), SessionTokenHeader)
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
		req.Header.Set("Origin", "https://shop.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func trackedClients(rl *RateLimiter) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2, time.Hour, time.Hour)
	t.Cleanup(rl.Shutdown)
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	limited := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too Many Requests"}`, limited.Body.String())

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code, "limits are per client")
	assert.Equal(t, 2, trackedClients(rl))
}

func TestRateLimiter_CleanupDropsStaleClients(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 10, 10, 10*time.Millisecond, time.Nanosecond)
	t.Cleanup(rl.Shutdown)
	rl.getVisitor("10.0.0.1")

	assert.Eventually(t, func() bool { return trackedClients(rl) == 0 }, time.Second, 10*time.Millisecond)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 8)
}

func TestRealIPMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		trustProxy bool
		xff        string
		realIP     string
		wantIP     string
	}{
		{name: "peer address without headers", trustProxy: true, wantIP: "192.0.2.7"},
		{name: "untrusted forwarded-for is ignored", xff: "203.0.113.9", wantIP: "192.0.2.7"},
		{name: "untrusted real-ip is ignored", realIP: "198.51.100.2", wantIP: "192.0.2.7"},
		{name: "trusted forwarded-for first hop", trustProxy: true, xff: "203.0.113.9, 10.0.0.1", realIP: "198.51.100.2", wantIP: "203.0.113.9"},
		{name: "trusted real-ip", trustProxy: true, realIP: "198.51.100.2", wantIP: "198.51.100.2"},
		{name: "trusted garbage falls back", trustProxy: true, xff: "not-an-ip", wantIP: "192.0.2.7"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var got string
			handler := NewRealIPMiddleware(tc.trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = getClientIP(r)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.7:4321"
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			// when
			handler.ServeHTTP(httptest.NewRecorder(), req)

			// then
			assert.Equal(t, tc.wantIP, got)
		})
	}
}

func TestRateLimiter_IgnoresSpoofedForwardedFor(t *testing.T) {
	// given a limiter not behind a trusted proxy
	rl := NewRateLimiter(context.Background(), 1, 1, time.Hour, time.Hour)
	t.Cleanup(rl.Shutdown)
	handler := NewRealIPMiddleware(false)(rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	call := func(xff string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// when one client rotates forwarded addresses
	first := call("203.0.113.1")
	second := call("203.0.113.2")

	// then both requests count against the same peer
	assert.Equal(t, http.StatusOK, first)
	assert.Equal(t, http.StatusTooManyRequests, second)
	assert.Equal(t, 1, trackedClients(rl))
}
