package db

import (
	"fmt"
	"strings"
)

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{def: IndexDefinition{Name: name}}
}

// Analyzer sets the default analyzer for text fields.
func (b *IndexBuilder) Analyzer(name string) *IndexBuilder {
	b.def.DefaultAnalyzer = name
	return b
}

// Text adds an analysed text field.
func (b *IndexBuilder) Text(name string, store bool) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldText, Store: store})
	return b
}

// TextWithAnalyzer adds a text field analysed by a specific analyzer.
func (b *IndexBuilder) TextWithAnalyzer(name, analyzer string, store bool) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:     name,
		Type:     IndexFieldText,
		Analyzer: analyzer,
		Store:    store,
	})
	return b
}

// Keyword adds exact-match fields.
func (b *IndexBuilder) Keyword(store bool, names ...string) *IndexBuilder {
	for _, n := range names {
		b.def.Fields = append(b.def.Fields, IndexField{Name: n, Type: IndexFieldKeyword, Store: store})
	}
	return b
}

// DateTime adds a timestamp field.
func (b *IndexBuilder) DateTime(name string, store bool) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: IndexFieldDateTime, Store: store})
	return b
}

// Spelling marks previously added fields as spelling dictionary sources.
// Unknown names are ignored.
func (b *IndexBuilder) Spelling(names ...string) *IndexBuilder {
	for i := range b.def.Fields {
		for _, n := range names {
			if b.def.Fields[i].Name == n {
				b.def.Fields[i].Spelling = true
			}
		}
	}
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	def.Fields = append([]IndexField(nil), b.def.Fields...)
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a compact debug representation of the schema.
func (idx *IndexDefinition) String() string {
	parts := []string{"INDEX", idx.Name}
	if idx.DefaultAnalyzer != "" {
		parts = append(parts, "ANALYZER", idx.DefaultAnalyzer)
	}
	parts = append(parts, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		var kind string
		switch f.Type {
		case IndexFieldText:
			kind = "TEXT"
			if f.Analyzer != "" {
				kind += "(" + f.Analyzer + ")"
			}
		case IndexFieldKeyword:
			kind = "KEYWORD"
		case IndexFieldDateTime:
			kind = "DATETIME"
		default:
			kind = fmt.Sprintf("UNKNOWN(%d)", f.Type)
		}
		if f.Store {
			kind += " STORED"
		}
		if f.Spelling {
			kind += " SPELLING"
		}
		parts = append(parts, f.Name, kind)
	}
	return strings.Join(parts, " ")
}
