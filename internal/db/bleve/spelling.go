package bleve

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
)

// DefaultMaxEdits is the largest edit distance a suggestion may be from the input term.
const DefaultMaxEdits = 2

type candidate struct {
	term  string
	dist  int
	count uint64
}

// suggest replaces every query term absent from the spelling dictionary with
// the closest dictionary term. Ties on distance go to the more frequent term.
// Returns "" when nothing would change.
func (e *Engine) suggest(ctx context.Context, text string) (string, error) {
	terms := autoquery.Parse(text).Terms()
	if len(terms) == 0 {
		return "", nil
	}

	wanted := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if lt := strings.ToLower(t); isCorrectable(lt) {
			wanted[lt] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return "", nil
	}

	dict, err := e.index.FieldDict(SpellingField)
	if err != nil {
		return "", fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = dict.Close() }()

	known := make(map[string]bool, len(wanted))
	best := make(map[string]candidate, len(wanted))
	for n := 0; ; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		entry, err := dict.Next()
		if err != nil {
			return "", fmt.Errorf("read dictionary: %w", err)
		}
		if entry == nil {
			break
		}
		for w := range wanted {
			if entry.Term == w {
				known[w] = true
				continue
			}
			if abs(len(entry.Term)-len(w)) > e.maxEdits {
				continue
			}
			d := fuzzy.LevenshteinDistance(w, entry.Term)
			if d > e.maxEdits {
				continue
			}
			cur, ok := best[w]
			if !ok || d < cur.dist || (d == cur.dist && entry.Count > cur.count) {
				best[w] = candidate{term: entry.Term, dist: d, count: entry.Count}
			}
		}
	}

	changed := false
	out := make([]string, len(terms))
	for i, t := range terms {
		lt := strings.ToLower(t)
		out[i] = t
		if known[lt] {
			continue
		}
		if c, ok := best[lt]; ok {
			out[i] = c.term
			changed = true
		}
	}
	if !changed {
		return "", nil
	}
	return strings.Join(out, " "), nil
}

func isCorrectable(term string) bool {
	return term != "" && !strings.ContainsAny(term, "*?")
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
