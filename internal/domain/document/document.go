package document

import (
	"fmt"
	"regexp"
	"slices"
	"time"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// Size limits.
const (
	// MaxTextSize is the maximum document text size in bytes.
	MaxTextSize = 1 << 20 // 1MB
	MaxIDLength = 256
)

// Fields is the raw content of an indexable document.
type Fields struct {
	Title       string
	Text        string
	URL         string
	ContentType string
	MetaType    string
	Category    string
	Owner       string
	Group       string
	Keywords    []string
	AllowList   []string
	Changed     time.Time
	Published   time.Time
}

// Document is an indexable piece of intranet content (immutable value object).
type Document struct {
	id     string
	fields Fields
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_.:-]+$, 1-256 chars. Title or text must be non-empty,
// content type and allow-list are required.
func New(id string, f Fields) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > MaxIDLength {
		return Document{}, fmt.Errorf("document ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with dots, colons, underscores and hyphens")
	}
	if f.Title == "" && f.Text == "" {
		return Document{}, fmt.Errorf("title or text is required")
	}
	if len(f.Text) > MaxTextSize {
		return Document{}, fmt.Errorf("text too large (max %d bytes)", MaxTextSize)
	}
	if f.ContentType == "" {
		return Document{}, fmt.Errorf("content type is required")
	}
	if len(f.AllowList) == 0 {
		return Document{}, fmt.Errorf("allow list is required")
	}

	f.Keywords = slices.Clone(f.Keywords)
	f.AllowList = slices.Clone(f.AllowList)
	return Document{id: id, fields: f}, nil
}

// ID returns the document identifier.
func (d Document) ID() string { return d.id }

// Title returns the document title.
func (d Document) Title() string { return d.fields.Title }

// Text returns the searchable body.
func (d Document) Text() string { return d.fields.Text }

// URL returns the document location.
func (d Document) URL() string { return d.fields.URL }

// ContentType returns the model label, e.g. "pages.page".
func (d Document) ContentType() string { return d.fields.ContentType }

// MetaType returns the coarse content kind.
func (d Document) MetaType() string { return d.fields.MetaType }

// Category returns the category slug.
func (d Document) Category() string { return d.fields.Category }

// Owner returns the owning username.
func (d Document) Owner() string { return d.fields.Owner }

// Group returns the owning group id.
func (d Document) Group() string { return d.fields.Group }

// Keywords returns the exact-match keywords.
func (d Document) Keywords() []string { return slices.Clone(d.fields.Keywords) }

// AllowList returns the access tokens that may see the document.
func (d Document) AllowList() []string { return slices.Clone(d.fields.AllowList) }

// Changed returns the last modification time.
func (d Document) Changed() time.Time { return d.fields.Changed }

// Published returns the publication time.
func (d Document) Published() time.Time { return d.fields.Published }
