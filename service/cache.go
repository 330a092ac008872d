// file: service/cache.go

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// accountCacheTTL bounds how long a cached read may be served.
const accountCacheTTL = 10 * time.Minute

// ICacheClient defines the contract for a cache client.
// *redis.Client satisfies it.
type ICacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// nopCache is used when Redis is disabled; every Get is a miss.
type nopCache struct{}

func (nopCache) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (nopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (nopCache) Incr(ctx context.Context, key string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

func accountCacheKey(accountNumber string) string {
	return fmt.Sprintf("account:%s", accountNumber)
}

// customerGenerationKey holds a counter bumped on every account created for the
// customer. List entries are keyed by it, so a list read before a create can
// only be written under a generation no later reader uses.
func customerGenerationKey(customerID string) string {
	return fmt.Sprintf("accounts:customer:%s:gen", customerID)
}

func customerAccountsCacheKey(customerID, generation string) string {
	return fmt.Sprintf("accounts:customer:%s:v%s", customerID, generation)
}
