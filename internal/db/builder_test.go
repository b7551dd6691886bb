package db

import (
	"slices"
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("content").
		Analyzer("en").
		Text("text", false).
		Keyword(true, "owner", "group").
		DateTime("changed", true).
		MustBuild()

	if idx.Name != "content" {
		t.Errorf("name = %q, want content", idx.Name)
	}
	if idx.DefaultAnalyzer != "en" {
		t.Errorf("analyzer = %q, want en", idx.DefaultAnalyzer)
	}
	if len(idx.Fields) != 4 {
		t.Fatalf("fields count = %d, want 4", len(idx.Fields))
	}
	if idx.Fields[1].Name != "owner" || idx.Fields[1].Type != IndexFieldKeyword {
		t.Errorf("field[1] = %+v, want owner KEYWORD", idx.Fields[1])
	}
	if idx.Fields[3].Type != IndexFieldDateTime {
		t.Errorf("field[3] = %+v, want DATETIME", idx.Fields[3])
	}
}

func TestIndexBuilder_StoredFields(t *testing.T) {
	idx := NewIndex("content").
		Text("text", false).
		Text("title", true).
		Keyword(true, "url").
		MustBuild()

	if got := idx.StoredFields(); !slices.Equal(got, []string{"title", "url"}) {
		t.Errorf("StoredFields() = %v", got)
	}
	if f, ok := idx.Field("url"); !ok || f.Type != IndexFieldKeyword {
		t.Errorf("Field(url) = %+v, %v", f, ok)
	}
	if _, ok := idx.Field("missing"); ok {
		t.Error("Field(missing) found")
	}
}

func TestIndexBuilder_Spelling(t *testing.T) {
	idx := NewIndex("content").
		Text("text", false).
		Text("title", true).
		Spelling("text", "unknown").
		MustBuild()

	if got := idx.SpellingFields(); !slices.Equal(got, []string{"text"}) {
		t.Errorf("SpellingFields() = %v", got)
	}
}

func TestIndexBuilder_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    *IndexBuilder
		want string
	}{
		{"empty name", NewIndex("").Text("a", false), "index name is required"},
		{"bad name", NewIndex("bad name").Text("a", false), "invalid characters"},
		{"no fields", NewIndex("idx"), "at least one field"},
		{"duplicate", NewIndex("idx").Text("a", false).Keyword(false, "a"), "duplicate field name"},
		{"empty field", NewIndex("idx").Keyword(false, ""), "field name is required"},
		{"analyzer on keyword", &IndexBuilder{def: IndexDefinition{
			Name:   "idx",
			Fields: []IndexField{{Name: "a", Type: IndexFieldKeyword, Analyzer: "en"}},
		}}, "analyzer set on non-text field"},
		{"spelling on keyword", NewIndex("idx").Keyword(false, "a").Spelling("a"), "spelling set on non-text field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want contains %q", err.Error(), tt.want)
			}
		})
	}
}

func TestIndexBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewIndex("").MustBuild()
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("content").
		Analyzer("en").
		TextWithAnalyzer("title", "standard", true).
		Keyword(false, "owner").
		DateTime("changed", true).
		MustBuild()

	want := "INDEX content ANALYZER en SCHEMA title TEXT(standard) STORED owner KEYWORD changed DATETIME STORED"
	if got := idx.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	e := &Error{Op: OpSearch, Err: ErrIndexNotFound}
	if e.Error() != "SEARCH: db: index not found" {
		t.Errorf("Error() = %q", e.Error())
	}
	if e.Unwrap() != ErrIndexNotFound {
		t.Error("Unwrap() mismatch")
	}
}
