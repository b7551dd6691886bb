// Package profile describes the search variants the service exposes as
// compositions of capabilities.
package profile

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
)

// Profile names.
const (
	NameDefault      = "default"
	NameGroupContent = "group_content"
	NameUserContent  = "user_content"
)

// Profile is an immutable set of search capabilities.
type Profile struct {
	name         string
	accessFilter bool
	dimensions   []dimension.Dimension
	fixed        *dimension.Dimension
	spelling     bool
}

// New validates and creates a profile.
func New(name string, accessFilter bool, dims []dimension.Dimension, fixed *dimension.Dimension, spelling bool) (Profile, error) {
	if name == "" {
		return Profile{}, fmt.Errorf("profile name is required")
	}
	for _, d := range dims {
		if !d.IsValid() {
			return Profile{}, fmt.Errorf("profile %s: unknown dimension %q", name, d)
		}
	}
	if fixed != nil {
		if !fixed.IsValid() {
			return Profile{}, fmt.Errorf("profile %s: unknown fixed dimension %q", name, *fixed)
		}
		if slices.Contains(dims, *fixed) {
			return Profile{}, fmt.Errorf("profile %s: fixed dimension %q cannot also be a filter", name, *fixed)
		}
		f := *fixed
		fixed = &f
	}
	return Profile{
		name:         name,
		accessFilter: accessFilter,
		dimensions:   slices.Clone(dims),
		fixed:        fixed,
		spelling:     spelling,
	}, nil
}

func mustNew(name string, accessFilter bool, dims []dimension.Dimension, fixed *dimension.Dimension, spelling bool) Profile {
	p, err := New(name, accessFilter, dims, fixed, spelling)
	if err != nil {
		panic(err)
	}
	return p
}

func ptr(d dimension.Dimension) *dimension.Dimension { return &d }

var contentDims = []dimension.Dimension{dimension.ContentType, dimension.MetaType, dimension.Category}

// Default searches everything the user may see, filterable on every dimension.
func Default() Profile {
	return mustNew(NameDefault, true, dimension.All(), nil, true)
}

// GroupContent searches the content of one group. No spelling suggestions.
func GroupContent() Profile {
	return mustNew(NameGroupContent, true, contentDims, ptr(dimension.Group), false)
}

// UserContent searches the content owned by one user.
func UserContent() Profile {
	return mustNew(NameUserContent, true, contentDims, ptr(dimension.Owner), true)
}

// Name returns the profile name.
func (p Profile) Name() string { return p.name }

// AccessFilter reports whether non-admin searches are restricted to the allow-list.
func (p Profile) AccessFilter() bool { return p.accessFilter }

// Dimensions returns the dimensions users can filter and facet by.
func (p Profile) Dimensions() []dimension.Dimension { return slices.Clone(p.dimensions) }

// Exposes reports whether d is a user-facing dimension of the profile.
func (p Profile) Exposes(d dimension.Dimension) bool { return slices.Contains(p.dimensions, d) }

// Fixed returns the dimension bound from the route, if any.
func (p Profile) Fixed() (dimension.Dimension, bool) {
	if p.fixed == nil {
		return "", false
	}
	return *p.fixed, true
}

// Spelling reports whether suggestions are computed for this profile.
func (p Profile) Spelling() bool { return p.spelling }
