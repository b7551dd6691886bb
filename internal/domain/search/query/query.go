// Package query validates and cleans raw search form input.
package query

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/kailas-cloud/djinnsearch/internal/domain"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/order"
)

// Input limits.
const (
	// DefaultMaxLength is the maximum query text length when Rules leaves it unset.
	DefaultMaxLength = 4096
	// DefaultMaxValues is the maximum number of values per dimension when Rules leaves it unset.
	DefaultMaxValues = 32
	// MaxKeywordLength bounds the exact keyword filter.
	MaxKeywordLength = 256
)

// Field names used in validation errors.
const (
	FieldText     = "q"
	FieldKeywords = "keywords"
	FieldOrderBy  = "order_by"
	FieldPage     = "page"
)

// ErrNoQuery signals input without text to search for.
var ErrNoQuery = errors.New("no query")

// Input is raw, unvalidated form input.
type Input struct {
	Text     string
	Filters  map[dimension.Dimension][]string
	Keywords string
	OrderBy  string
	Page     int
}

// Rules configure validation.
type Rules struct {
	// ContentTypes is the allowed content type set. Empty allows any.
	ContentTypes []string
	MaxLength    int
	MaxValues    int
}

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidQuery.Error(), strings.Join(parts, "; "))
}

// Unwrap returns the sentinel.
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidQuery }

// Query is validated, cleaned search input. Immutable.
type Query struct {
	text     string
	filters  map[dimension.Dimension][]string
	keywords string
	order    order.Order
	page     int
}

// New validates input against rules and returns the cleaned query.
// Apostrophes in the text become wildcards. Page defaults to 1.
func New(in Input, rules Rules) (Query, error) {
	if rules.MaxLength <= 0 {
		rules.MaxLength = DefaultMaxLength
	}
	if rules.MaxValues <= 0 {
		rules.MaxValues = DefaultMaxValues
	}

	errs := make(map[string]string)

	if len(in.Text) > rules.MaxLength {
		errs[FieldText] = fmt.Sprintf("query too long (max %d chars)", rules.MaxLength)
	}

	filters := make(map[dimension.Dimension][]string, len(in.Filters))
	for dim, raw := range in.Filters {
		if !dim.IsValid() {
			errs[string(dim)] = "unknown filter"
			continue
		}
		values := normalizeValues(raw)
		if len(values) > rules.MaxValues {
			errs[string(dim)] = fmt.Sprintf("too many values (max %d)", rules.MaxValues)
			continue
		}
		if dim == dimension.ContentType && len(rules.ContentTypes) > 0 {
			if bad := firstUnknown(values, rules.ContentTypes); bad != "" {
				errs[string(dim)] = fmt.Sprintf("unknown content type %q", bad)
				continue
			}
		}
		if len(values) > 0 {
			filters[dim] = values
		}
	}

	keywords := strings.TrimSpace(in.Keywords)
	if len(keywords) > MaxKeywordLength {
		errs[FieldKeywords] = fmt.Sprintf("keywords too long (max %d chars)", MaxKeywordLength)
	}

	o := order.Order(strings.TrimSpace(in.OrderBy))
	if !o.IsValid() {
		errs[FieldOrderBy] = fmt.Sprintf("unknown ordering %q", in.OrderBy)
	}

	page := in.Page
	if page < 0 {
		errs[FieldPage] = "page must be positive"
	}
	if page == 0 {
		page = 1
	}

	if len(errs) > 0 {
		return Query{}, &ValidationError{Fields: errs}
	}

	return Query{
		text:     Clean(in.Text),
		filters:  filters,
		keywords: keywords,
		order:    o,
		page:     page,
	}, nil
}

// Clean trims the text and turns apostrophes into wildcards so that
// "o'neil" matches "oneil" and "o neil".
func Clean(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "'", "*")
}

// Text returns the cleaned query text.
func (q Query) Text() string { return q.text }

// IsEmpty reports whether the text holds no term or phrase to match.
// Exclusions alone do not count.
func (q Query) IsEmpty() bool { return autoquery.Parse(q.text).IsEmpty() }

// Values returns the filter values for a dimension.
func (q Query) Values(d dimension.Dimension) []string { return slices.Clone(q.filters[d]) }

// Dimensions returns the dimensions that carry values, in stable order.
func (q Query) Dimensions() []dimension.Dimension {
	out := make([]dimension.Dimension, 0, len(q.filters))
	for d := range q.filters {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Keywords returns the exact keyword filter.
func (q Query) Keywords() string { return q.keywords }

// Order returns the ordering key.
func (q Query) Order() order.Order { return q.order }

// Page returns the 1-based page number.
func (q Query) Page() int { return q.page }

func normalizeValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func firstUnknown(values, allowed []string) string {
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			return v
		}
	}
	return ""
}
