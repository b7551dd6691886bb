package profile

import (
	"testing"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
)

func TestBuiltins(t *testing.T) {
	tests := []struct {
		p        Profile
		name     string
		dims     int
		fixed    dimension.Dimension
		hasFixed bool
		spelling bool
	}{
		{Default(), NameDefault, 5, "", false, true},
		{GroupContent(), NameGroupContent, 3, dimension.Group, true, false},
		{UserContent(), NameUserContent, 3, dimension.Owner, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Name() != tt.name {
				t.Errorf("Name() = %q", tt.p.Name())
			}
			if !tt.p.AccessFilter() {
				t.Error("AccessFilter() = false")
			}
			if len(tt.p.Dimensions()) != tt.dims {
				t.Errorf("Dimensions() = %v", tt.p.Dimensions())
			}
			fixed, ok := tt.p.Fixed()
			if ok != tt.hasFixed || fixed != tt.fixed {
				t.Errorf("Fixed() = %q, %v", fixed, ok)
			}
			if tt.p.Spelling() != tt.spelling {
				t.Errorf("Spelling() = %v", tt.p.Spelling())
			}
		})
	}
}

func TestExposes(t *testing.T) {
	p := GroupContent()
	if !p.Exposes(dimension.Category) {
		t.Error("group content should expose category")
	}
	if p.Exposes(dimension.Owner) {
		t.Error("group content should not expose owner")
	}
}

func TestNew_Invalid(t *testing.T) {
	g := dimension.Group
	bad := dimension.Dimension("colour")

	tests := []struct {
		name  string
		pname string
		dims  []dimension.Dimension
		fixed *dimension.Dimension
	}{
		{"empty name", "", nil, nil},
		{"unknown dimension", "x", []dimension.Dimension{bad}, nil},
		{"unknown fixed", "x", nil, &bad},
		{"fixed also filter", "x", []dimension.Dimension{dimension.Group}, &g},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.pname, true, tt.dims, tt.fixed, false); err == nil {
				t.Error("expected error")
			}
		})
	}
}
