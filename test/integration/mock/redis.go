package mock

import (
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Redis is an in-process Redis backing the idempotency store in scenarios.
// Server gives steps control over key expiry.
type Redis struct {
	Server *miniredis.Miniredis
	Client *redis.Client
}

var (
	sharedRedisOnce sync.Once
	sharedRedis     *Redis
)

// SharedRedis returns the process-wide miniredis instance, starting it on first use.
func SharedRedis() *Redis {
	sharedRedisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic("mock: start miniredis: " + err.Error())
		}
		sharedRedis = &Redis{
			Server: server,
			Client: redis.NewClient(&redis.Options{Addr: server.Addr()}),
		}
	})
	return sharedRedis
}

// Reset drops every key so a scenario starts without stored replays.
func (r *Redis) Reset() {
	r.Server.FlushAll()
}

// Elapse advances miniredis time, expiring replay records older than d.
func (r *Redis) Elapse(d time.Duration) {
	r.Server.FastForward(d)
}
