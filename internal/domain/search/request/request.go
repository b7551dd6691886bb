package request

import (
	"slices"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/order"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
)

// Paging limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// RunOptions configure a single engine invocation.
type RunOptions struct {
	// SpellingQuery is the text to compute a suggestion for. Nil disables it.
	SpellingQuery *string
}

// Request is an engine-ready search. Immutable: every With method returns a copy.
type Request struct {
	profile string
	text    string
	match   predicate.Predicate
	filters []predicate.Predicate
	facets  []dimension.Dimension
	order   order.Order
	page    int
	perPage int
	run     RunOptions
	tainted bool
}

// New creates a request matching the cleaned text with the given predicate.
func New(text string, match predicate.Predicate) Request {
	return Request{text: text, match: match, page: 1, perPage: DefaultPerPage}
}

// WithProfile names the search profile the request was built for.
func (r Request) WithProfile(name string) Request {
	r.profile = name
	return r
}

// WithFilter adds a filter that every hit must satisfy.
func (r Request) WithFilter(p predicate.Predicate) Request {
	r.filters = append(slices.Clip(r.filters), p)
	return r
}

// WithFacets sets the dimensions to count values for.
func (r Request) WithFacets(dims ...dimension.Dimension) Request {
	r.facets = slices.Clone(dims)
	return r
}

// WithOrder sets the result ordering.
func (r Request) WithOrder(o order.Order) Request {
	r.order = o
	return r
}

// WithPage sets the 1-based page and its size. Out of range values are clamped.
func (r Request) WithPage(page, perPage int) Request {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	r.page, r.perPage = page, perPage
	return r
}

// WithRunOptions sets engine invocation options.
func (r Request) WithRunOptions(o RunOptions) Request {
	if o.SpellingQuery != nil {
		s := *o.SpellingQuery
		o.SpellingQuery = &s
	}
	r.run = o
	return r
}

// Relaxed returns a tainted copy whose text is matched by p instead.
func (r Request) Relaxed(p predicate.Predicate) Request {
	r.match = p
	r.tainted = true
	return r
}

// Profile returns the profile name.
func (r Request) Profile() string { return r.profile }

// Text returns the cleaned query text.
func (r Request) Text() string { return r.text }

// Match returns the text predicate.
func (r Request) Match() predicate.Predicate { return r.match }

// Filters returns the filter predicates.
func (r Request) Filters() []predicate.Predicate { return slices.Clone(r.filters) }

// Facets returns the faceted dimensions.
func (r Request) Facets() []dimension.Dimension { return slices.Clone(r.facets) }

// Order returns the ordering key.
func (r Request) Order() order.Order { return r.order }

// Page returns the 1-based page number.
func (r Request) Page() int { return r.page }

// PerPage returns the page size.
func (r Request) PerPage() int { return r.perPage }

// Offset returns the index of the first hit on the page.
func (r Request) Offset() int { return (r.page - 1) * r.perPage }

// RunOptions returns the engine invocation options.
func (r Request) RunOptions() RunOptions { return r.run }

// Tainted reports whether the request is the relaxed OR form of a zero-hit AND request.
func (r Request) Tainted() bool { return r.tainted }
