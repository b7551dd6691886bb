package bleve

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/djinnsearch/internal/db"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
)

// translate renders a predicate tree as a bleve query.
func translate(p predicate.Predicate) (query.Query, error) {
	switch p.Kind() {
	case predicate.KindAll:
		return bleve.NewMatchAllQuery(), nil

	case predicate.KindTerm:
		if p.Field() == "" {
			return nil, fmt.Errorf("%w: term without field", db.ErrInvalidQuery)
		}
		q := bleve.NewTermQuery(p.Value())
		q.SetField(p.Field())
		return q, nil

	case predicate.KindAnd:
		children, err := translateAll(p.Children())
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return bleve.NewMatchAllQuery(), nil
		}
		return bleve.NewConjunctionQuery(children...), nil

	case predicate.KindOr:
		children, err := translateAll(p.Children())
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return bleve.NewMatchNoneQuery(), nil
		}
		return bleve.NewDisjunctionQuery(children...), nil

	case predicate.KindText:
		return translateText(p.Field(), p.Query(), p.Operator())

	default:
		return nil, fmt.Errorf("%w: unknown predicate kind %d", db.ErrInvalidQuery, p.Kind())
	}
}

func translateAll(ps []predicate.Predicate) ([]query.Query, error) {
	out := make([]query.Query, 0, len(ps))
	for _, c := range ps {
		q, err := translate(c)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// translateText matches every plain term as a word or a word prefix, every
// phrase exactly, and combines them with op. Excluded terms must not match.
func translateText(field string, aq autoquery.Query, op predicate.Operator) (query.Query, error) {
	if field == "" {
		return nil, fmt.Errorf("%w: text without field", db.ErrInvalidQuery)
	}

	clauses := make([]query.Query, 0, len(aq.Terms())+len(aq.Phrases()))
	for _, t := range aq.Terms() {
		clauses = append(clauses, termClause(field, t))
	}
	for _, ph := range aq.Phrases() {
		q := bleve.NewMatchPhraseQuery(ph)
		q.SetField(field)
		clauses = append(clauses, q)
	}

	var positive query.Query
	switch {
	case len(clauses) == 0:
		positive = bleve.NewMatchAllQuery()
	case len(clauses) == 1:
		positive = clauses[0]
	case op == predicate.OperatorOr:
		positive = bleve.NewDisjunctionQuery(clauses...)
	default:
		positive = bleve.NewConjunctionQuery(clauses...)
	}

	if len(aq.Excluded()) == 0 {
		return positive, nil
	}

	bq := bleve.NewBooleanQuery()
	bq.AddMust(positive)
	for _, ex := range aq.Excluded() {
		q := bleve.NewMatchQuery(ex)
		q.SetField(field)
		bq.AddMustNot(q)
	}
	return bq, nil
}

// termClause matches a single user term. Terms with wildcards go to a
// wildcard query, everything else matches the analysed word or its prefix.
func termClause(field, term string) query.Query {
	lower := strings.ToLower(term)
	if strings.ContainsAny(term, "*?") {
		q := bleve.NewWildcardQuery(lower)
		q.SetField(field)
		return q
	}

	m := bleve.NewMatchQuery(term)
	m.SetField(field)
	m.SetOperator(query.MatchQueryOperatorAnd)

	p := bleve.NewPrefixQuery(lower)
	p.SetField(field)

	return bleve.NewDisjunctionQuery(m, p)
}
