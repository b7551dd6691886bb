// Package autoquery parses free-text user input into plain terms, quoted
// phrases and excluded terms.
package autoquery

import (
	"regexp"
	"slices"
	"strings"
)

var phraseRegex = regexp.MustCompile(`"([^"]*)"`)

// Query is parsed user input. Immutable.
type Query struct {
	raw      string
	terms    []string
	phrases  []string
	excluded []string
}

// Parse splits raw input. Text inside double quotes becomes a phrase, a
// token prefixed with "-" is excluded, everything else is a plain term.
func Parse(raw string) Query {
	q := Query{raw: raw}

	for _, m := range phraseRegex.FindAllStringSubmatch(raw, -1) {
		if p := strings.TrimSpace(m[1]); p != "" {
			q.phrases = append(q.phrases, p)
		}
	}

	rest := phraseRegex.ReplaceAllString(raw, " ")
	for _, tok := range strings.Fields(rest) {
		tok = strings.Trim(tok, `"`)
		switch {
		case tok == "" || tok == "-":
			continue
		case strings.HasPrefix(tok, "-"):
			q.excluded = append(q.excluded, tok[1:])
		default:
			q.terms = append(q.terms, tok)
		}
	}

	return q
}

// Raw returns the input the query was parsed from.
func (q Query) Raw() string { return q.raw }

// Terms returns the plain terms.
func (q Query) Terms() []string { return q.terms }

// Phrases returns the quoted phrases.
func (q Query) Phrases() []string { return q.phrases }

// Excluded returns the terms prefixed with "-".
func (q Query) Excluded() []string { return q.excluded }

// IsEmpty reports whether nothing positive is left to match.
func (q Query) IsEmpty() bool { return len(q.terms) == 0 && len(q.phrases) == 0 }

// Parts splits q into one query per plain term and per phrase. Every part
// keeps all of q's exclusions.
func (q Query) Parts() []Query {
	parts := make([]Query, 0, len(q.terms)+len(q.phrases))
	for _, t := range q.terms {
		parts = append(parts, Query{raw: t, terms: []string{t}, excluded: slices.Clone(q.excluded)})
	}
	for _, p := range q.phrases {
		parts = append(parts, Query{raw: `"` + p + `"`, phrases: []string{p}, excluded: slices.Clone(q.excluded)})
	}
	return parts
}
