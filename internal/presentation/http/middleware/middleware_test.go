package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/cueclub-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/cueclub-api/internal/infrastructure/repository"
	"github.com/sangkips/cueclub-api/internal/presentation/http/middleware"
	"github.com/sangkips/cueclub-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Data    struct {
		Calls int `json:"calls"`
	} `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	router := gin.New()
	router.GET("/me", middleware.AuthMiddleware(jwtManager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"staff_id": c.MustGet(middleware.ContextStaffID).(uuid.UUID).String(),
			"role":     c.GetString(middleware.ContextStaffRole),
		})
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decode(t, w).Kind)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := serve(router, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := utils.NewJWTManager("other-secret", time.Hour).GenerateAccessToken(uuid.New(), "a@b.c", "admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		w := serve(router, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		staffID := uuid.New()
		token, err := jwtManager.GenerateAccessToken(staffID, "desk@club.test", "staff")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := serve(router, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, staffID.String(), got["staff_id"])
		assert.Equal(t, "staff", got["role"])
	})
}

func TestRequireRole(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.ContextStaffRole, role)
			}
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusNoContent},
		{"staff", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tt := range tests {
		router := gin.New()
		router.POST("/tables", withRole(tt.role), middleware.RequireRole("admin"), ok)

		w := serve(router, httptest.NewRequest(http.MethodPost, "/tables", nil))
		assert.Equal(t, tt.want, w.Code, "role %q", tt.role)
	}
}

func TestStaffRateLimiter(t *testing.T) {
	rl := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	first, second := uuid.New(), uuid.New()
	router := gin.New()
	router.GET("/ping", func(c *gin.Context) {
		if id := c.GetHeader("X-Staff"); id != "" {
			c.Set(middleware.ContextStaffID, uuid.MustParse(id))
		}
	}, rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(staff uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Staff", staff.String())
		return serve(router, req)
	}

	assert.Equal(t, http.StatusOK, call(first).Code)
	assert.Equal(t, http.StatusOK, call(first).Code)

	limited := call(first)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "rate_limited", decode(t, limited).Kind)

	assert.Equal(t, http.StatusOK, call(second).Code)
}

func TestIdempotencyRequired(t *testing.T) {
	repo := repository.NewIdempotencyRepository(dbtest.New(t))
	staffID := uuid.New()
	now := time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			c.Set(middleware.ContextStaffID, staffID)
		}
	})
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: repo,
		Now:  func() time.Time { return now },
	})
	router.POST("/sessions", idempotent, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"calls": calls}})
	})
	router.POST("/sessions/:id/checkout", idempotent, func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "kind": "conflict"})
	})

	post := func(path, key, payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(middleware.IdempotencyKeyHeader, key)
		}
		return serve(router, req)
	}

	t.Run("key is required", func(t *testing.T) {
		w := post("/sessions", "", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("anonymous requests are rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString(`{}`))
		req.Header.Set(middleware.IdempotencyKeyHeader, "anon")
		req.Header.Set("X-Anonymous", "1")
		w := serve(router, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("repeat replays the stored response", func(t *testing.T) {
		first := post("/sessions", "open-1", `{"table_id":"t1"}`)
		require.Equal(t, http.StatusCreated, first.Code)
		assert.Equal(t, 1, decode(t, first).Data.Calls)

		again := post("/sessions", "open-1", `{"table_id":"t1"}`)
		require.Equal(t, http.StatusCreated, again.Code)
		assert.Equal(t, "true", again.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, first.Body.String(), again.Body.String())
		assert.Equal(t, 1, calls)
	})

	t.Run("same key with another body is rejected", func(t *testing.T) {
		w := post("/sessions", "open-1", `{"table_id":"t2"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("failures are not stored", func(t *testing.T) {
		w := post("/sessions/abc/checkout", "checkout-1", `{}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		stored, err := repo.FindLive(context.Background(), "checkout-1", staffID, now)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})

	t.Run("expired keys are ignored", func(t *testing.T) {
		now = now.Add(25 * time.Hour)
		w := post("/sessions", "open-1", `{"table_id":"t1"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
		assert.Equal(t, 2, calls)
	})
}
