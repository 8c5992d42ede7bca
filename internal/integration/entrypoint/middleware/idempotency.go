package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/adapter"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key of a retryable request.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayHeader marks responses served from the idempotency store.
	IdempotentReplayHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

// Idempotency replays the stored response when a mutating request is retried
// with the same Idempotency-Key. Requests without the header pass through.
type Idempotency struct {
	store      adapter.IdempotencyStore
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotency creates the idempotency middleware. A nil store disables it.
func NewIdempotency(store adapter.IdempotencyStore, ttl, pendingTTL time.Duration) *Idempotency {
	return &Idempotency{
		store:      store,
		ttl:        ttl,
		pendingTTL: pendingTTL,
	}
}

// responseRecorder keeps a copy of the body written by the handler.
type responseRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware returns a Gin middleware handler. It must run after Authenticate.
func (m *Idempotency) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if m.store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Idempotency-Key must not exceed 255 characters",
				Code:    string(domainerror.ErrCodeMissingFields),
				Details: IdempotencyKeyHeader,
			})
			return
		}

		userID, _ := GetUserIDFromContext(c)
		storeKey := userID.String() + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key
		ctx := c.Request.Context()

		reserved, err := m.store.Reserve(ctx, storeKey, m.pendingTTL)
		if err != nil {
			slog.Warn("Idempotency store unavailable, processing without replay protection", "error", err)
			c.Next()
			return
		}

		if !reserved {
			stored, err := m.store.Load(ctx, storeKey)
			if err != nil {
				slog.Warn("Failed to load idempotent response", "error", err)
			}
			if stored != nil {
				c.Header(IdempotentReplayHeader, "true")
				c.Data(stored.StatusCode, stored.ContentType, stored.Body)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{
				Error: "A request with this Idempotency-Key is still being processed",
				Code:  string(domainerror.ErrCodeConcurrentModification),
			})
			return
		}

		recorder := &responseRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		// Server failures are not cached so the client can retry with the same key.
		if recorder.Status() >= http.StatusInternalServerError {
			if err := m.store.Release(ctx, storeKey); err != nil {
				slog.Warn("Failed to release idempotency key", "error", err)
			}
			return
		}

		stored := &adapter.StoredResponse{
			StatusCode:  recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.body.Bytes(),
		}
		if err := m.store.Save(ctx, storeKey, stored, m.ttl); err != nil {
			slog.Warn("Failed to save idempotent response", "error", err)
		}
	}
}
