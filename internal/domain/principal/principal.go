// Package principal models the identity a search runs on behalf of.
package principal

import (
	"fmt"
	"strconv"
)

// Access token prefixes stored in each document's allow-list.
const (
	// TokenAllUsers is granted to every authenticated user.
	TokenAllUsers = "group_users"
	userPrefix    = "user_"
	groupPrefix   = "group_"
)

// Principal is the requesting user: name, group memberships and admin flag.
type Principal struct {
	username  string
	groups    []int64
	superuser bool
}

// New validates and creates a Principal. Duplicate group ids are dropped.
func New(username string, groups []int64, superuser bool) (Principal, error) {
	if username == "" {
		return Principal{}, fmt.Errorf("username is required")
	}

	seen := make(map[int64]struct{}, len(groups))
	uniq := make([]int64, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		uniq = append(uniq, g)
	}

	return Principal{username: username, groups: uniq, superuser: superuser}, nil
}

// Username returns the user name.
func (p Principal) Username() string { return p.username }

// Groups returns the group ids the user belongs to.
func (p Principal) Groups() []int64 { return p.groups }

// IsSuperuser reports whether access filtering is bypassed for this user.
func (p Principal) IsSuperuser() bool { return p.superuser }

// AccessTokens returns the allow-list tokens a document must share with the
// principal to be visible: group_users, user_<name>, then group_<id> per group.
func (p Principal) AccessTokens() []string {
	tokens := make([]string, 0, 2+len(p.groups))
	tokens = append(tokens, TokenAllUsers, userPrefix+p.username)
	for _, g := range p.groups {
		tokens = append(tokens, groupPrefix+strconv.FormatInt(g, 10))
	}
	return tokens
}
