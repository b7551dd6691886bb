package db

import (
	"errors"
	"strconv"
)

// IndexFieldType enumerates supported index field types.
type IndexFieldType int

const (
	// IndexFieldText is analysed full text.
	IndexFieldText IndexFieldType = iota
	// IndexFieldKeyword is an exact, unanalysed value.
	IndexFieldKeyword
	// IndexFieldDateTime is a timestamp.
	IndexFieldDateTime
)

// IndexField describes a single field in an index schema.
type IndexField struct {
	Name string
	Type IndexFieldType
	// Analyzer overrides the default analyzer of text fields.
	Analyzer string
	// Store keeps the original value so hits can return it.
	Store bool
	// Spelling feeds the field into the spelling dictionary.
	Spelling bool
}

// IndexDefinition is a complete index schema.
type IndexDefinition struct {
	Name string
	// DefaultAnalyzer applies to text fields without their own analyzer.
	DefaultAnalyzer string
	Fields          []IndexField
}

// IndexDoc is a document ready to be written to the index.
type IndexDoc struct {
	ID     string
	Fields map[string]any
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		if f.Analyzer != "" && f.Type != IndexFieldText {
			return errors.New("analyzer set on non-text field: " + f.Name)
		}
		if f.Spelling && f.Type != IndexFieldText {
			return errors.New("spelling set on non-text field: " + f.Name)
		}
	}

	return nil
}

// Field returns the field named name.
func (idx *IndexDefinition) Field(name string) (IndexField, bool) {
	for _, f := range idx.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return IndexField{}, false
}

// StoredFields returns the names of stored fields in schema order.
func (idx *IndexDefinition) StoredFields() []string {
	var out []string
	for _, f := range idx.Fields {
		if f.Store {
			out = append(out, f.Name)
		}
	}
	return out
}

// SpellingFields returns the names of fields feeding the spelling dictionary.
func (idx *IndexDefinition) SpellingFields() []string {
	var out []string
	for _, f := range idx.Fields {
		if f.Spelling {
			out = append(out, f.Name)
		}
	}
	return out
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
