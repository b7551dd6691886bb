package principal

import (
	"context"

	domprincipal "github.com/kailas-cloud/djinnsearch/internal/domain/principal"
)

// StaticUser is a user entry declared in configuration.
type StaticUser struct {
	Groups    []int64
	Superuser bool
}

// StaticDirectory resolves principals from a fixed user table.
type StaticDirectory struct {
	users map[string]StaticUser
}

// NewStaticDirectory creates a directory over users. The map is copied.
func NewStaticDirectory(users map[string]StaticUser) *StaticDirectory {
	c := make(map[string]StaticUser, len(users))
	for k, v := range users {
		c[k] = v
	}
	return &StaticDirectory{users: c}
}

// Lookup resolves username. Unknown users get a principal with no groups.
func (d *StaticDirectory) Lookup(_ context.Context, username string) (domprincipal.Principal, error) {
	u := d.users[username]
	return domprincipal.New(username, u.Groups, u.Superuser)
}

// Ping always succeeds.
func (d *StaticDirectory) Ping(context.Context) error { return nil }
