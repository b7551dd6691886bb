package order

import "strings"

// Order is a result ordering key.
type Order string

// Supported orderings. A leading "-" sorts descending.
const (
	Relevance  Order = "relevance"
	Changed    Order = "-changed"
	Published  Order = "-published"
	TitleExact Order = "title_exact"
)

// IsValid checks if the order is one of the supported values. Empty means relevance.
func (o Order) IsValid() bool {
	switch o {
	case "", Relevance, Changed, Published, TitleExact:
		return true
	}
	return false
}

// IsRelevance reports whether results keep engine score order.
func (o Order) IsRelevance() bool { return o == "" || o == Relevance }

// Field returns the sort field without direction.
func (o Order) Field() string { return strings.TrimPrefix(string(o), "-") }

// Descending reports whether the sort is descending.
func (o Order) Descending() bool { return strings.HasPrefix(string(o), "-") }
