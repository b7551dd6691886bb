package redis

import (
	"time"

	"github.com/redis/rueidis"
)

// NewStoreForTest creates a Store over the provided rueidis client.
func NewStoreForTest(c rueidis.Client, cacheTTL time.Duration) *Store {
	return &Store{client: c, cacheTTL: cacheTTL}
}
