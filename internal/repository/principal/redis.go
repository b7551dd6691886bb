// Package principal resolves usernames into principals with their group
// memberships and admin flag.
package principal

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	domprincipal "github.com/kailas-cloud/djinnsearch/internal/domain/principal"
	"github.com/kailas-cloud/djinnsearch/internal/logger"
)

// store is the consumer interface for set lookups (ISP).
type store interface {
	Ping(ctx context.Context) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
}

// RedisDirectory reads memberships from Redis sets:
// <prefix>user:<username>:groups holds group ids, <prefix>superusers holds admin usernames.
type RedisDirectory struct {
	store  store
	prefix string
}

// NewRedisDirectory creates a directory reading keys under prefix.
func NewRedisDirectory(s store, prefix string) *RedisDirectory {
	return &RedisDirectory{store: s, prefix: prefix}
}

// Lookup resolves username. Unknown users get a principal with no groups.
func (d *RedisDirectory) Lookup(ctx context.Context, username string) (domprincipal.Principal, error) {
	members, err := d.store.SMembers(ctx, d.groupsKey(username))
	if err != nil {
		return domprincipal.Principal{}, fmt.Errorf("groups of %s: %w", username, err)
	}

	groups := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			logger.FromContext(ctx).Warn("skipping non-numeric group id",
				zap.String("user", username),
				zap.String("member", m),
			)
			continue
		}
		groups = append(groups, id)
	}

	admin, err := d.store.SIsMember(ctx, d.superusersKey(), username)
	if err != nil {
		return domprincipal.Principal{}, fmt.Errorf("superuser check %s: %w", username, err)
	}

	return domprincipal.New(username, groups, admin)
}

// Ping checks that Redis is reachable.
func (d *RedisDirectory) Ping(ctx context.Context) error {
	if err := d.store.Ping(ctx); err != nil {
		return fmt.Errorf("directory ping: %w", err)
	}
	return nil
}

func (d *RedisDirectory) groupsKey(username string) string {
	return d.prefix + "user:" + username + ":groups"
}

func (d *RedisDirectory) superusersKey() string {
	return d.prefix + "superusers"
}
