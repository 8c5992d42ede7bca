package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/integration/cache"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	calls  atomic.Int32
	status atomic.Int32
}

func newTestServer(store adapter.IdempotencyStore, userID uuid.UUID) *testServer {
	s := &testServer{router: gin.New()}
	s.status.Store(http.StatusCreated)

	idempotency := middleware.NewIdempotency(store, time.Hour, time.Minute)
	s.router.POST("/payments",
		func(c *gin.Context) {
			c.Set(string(middleware.UserIDKey), userID)
			c.Next()
		},
		idempotency.Middleware(),
		func(c *gin.Context) {
			n := s.calls.Add(1)
			c.JSON(int(s.status.Load()), gin.H{"call": n})
		},
	)
	return s
}

func (s *testServer) post(key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"amount":"10.00"}`))
	if key != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func redisStore(t *testing.T) adapter.IdempotencyStore {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewIdempotencyStore(client)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())

	first := s.post("abc")
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get(middleware.IdempotentReplayHeader))

	second := s.post("abc")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotentReplayHeader))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), s.calls.Load())

	s.post("other")
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())

	s.post("")
	s.post("")
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestIdempotency_KeysAreScopedPerUser(t *testing.T) {
	store := redisStore(t)
	alice := newTestServer(store, uuid.New())
	bob := newTestServer(store, uuid.New())

	alice.post("shared")
	w := bob.post("shared")
	assert.Empty(t, w.Header().Get(middleware.IdempotentReplayHeader))
	assert.Equal(t, int32(1), bob.calls.Load())
}

func TestIdempotency_ServerErrorsAreNotCached(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())
	s.status.Store(http.StatusInternalServerError)

	assert.Equal(t, http.StatusInternalServerError, s.post("retry-me").Code)

	s.status.Store(http.StatusCreated)
	w := s.post("retry-me")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get(middleware.IdempotentReplayHeader))
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestIdempotency_ClientErrorsAreReplayed(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())
	s.status.Store(http.StatusConflict)

	s.post("k")
	w := s.post("k")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "true", w.Header().Get(middleware.IdempotentReplayHeader))
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestIdempotency_RejectsOversizedKey(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())

	w := s.post(strings.Repeat("k", 256))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, s.calls.Load())
}

// pendingStore reports every key as reserved by another request.
type pendingStore struct{}

func (pendingStore) Reserve(context.Context, string, time.Duration) (bool, error) { return false, nil }
func (pendingStore) Load(context.Context, string) (*adapter.StoredResponse, error) {
	return nil, nil
}
func (pendingStore) Save(context.Context, string, *adapter.StoredResponse, time.Duration) error {
	return nil
}
func (pendingStore) Release(context.Context, string) error { return nil }

func TestIdempotency_InFlightKeyConflicts(t *testing.T) {
	s := newTestServer(pendingStore{}, uuid.New())

	w := s.post("busy")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, s.calls.Load())
}

func TestIdempotency_StoreUnavailable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := newTestServer(cache.NewIdempotencyStore(client), uuid.New())
	server.Close()

	assert.Equal(t, http.StatusCreated, s.post("k").Code)
	assert.Equal(t, http.StatusCreated, s.post("k").Code)
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestIdempotency_ConcurrentRetriesRunOnce(t *testing.T) {
	s := newTestServer(redisStore(t), uuid.New())

	var wg sync.WaitGroup
	codes := make([]int, 8)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.post("burst").Code
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), s.calls.Load())
	for _, code := range codes {
		assert.Contains(t, []int{http.StatusCreated, http.StatusConflict}, code)
	}
}
