// Package predicate is an engine-agnostic boolean predicate tree.
package predicate

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
)

// Kind identifies the node type of a predicate.
type Kind int

// Predicate kinds.
const (
	KindAll Kind = iota
	KindAnd
	KindOr
	KindTerm
	KindText
)

// Operator combines the terms of a text predicate.
type Operator string

// Text operators.
const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// ParseOperator parses a case-insensitive operator name.
func ParseOperator(s string) (Operator, error) {
	switch Operator(strings.ToUpper(strings.TrimSpace(s))) {
	case OperatorAnd:
		return OperatorAnd, nil
	case OperatorOr:
		return OperatorOr, nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}

// Predicate is an immutable predicate node.
type Predicate struct {
	kind     Kind
	field    string
	value    string
	text     autoquery.Query
	operator Operator
	children []Predicate
}

// All matches every document.
func All() Predicate { return Predicate{kind: KindAll} }

// Term matches documents whose field holds exactly value.
func Term(field, value string) Predicate {
	return Predicate{kind: KindTerm, field: field, value: value}
}

// In matches documents whose field holds any of values.
func In(field string, values ...string) Predicate {
	children := make([]Predicate, 0, len(values))
	for _, v := range values {
		children = append(children, Term(field, v))
	}
	return Predicate{kind: KindOr, field: field, children: children}
}

// Text matches analysed content of field against a parsed query.
func Text(field string, q autoquery.Query, op Operator) Predicate {
	return Predicate{kind: KindText, field: field, text: q, operator: op}
}

// And matches documents satisfying every child.
func And(children ...Predicate) Predicate {
	return Predicate{kind: KindAnd, children: clone(children)}
}

// Or matches documents satisfying at least one child.
func Or(children ...Predicate) Predicate {
	return Predicate{kind: KindOr, children: clone(children)}
}

// Kind returns the node type.
func (p Predicate) Kind() Kind { return p.kind }

// Field returns the field of a term, text or In predicate.
func (p Predicate) Field() string { return p.field }

// Value returns the value of a term predicate.
func (p Predicate) Value() string { return p.value }

// Query returns the parsed text of a text predicate.
func (p Predicate) Query() autoquery.Query { return p.text }

// Operator returns how a text predicate combines its terms.
func (p Predicate) Operator() Operator { return p.operator }

// Children returns a copy of the child predicates.
func (p Predicate) Children() []Predicate { return clone(p.children) }

// Values returns the term values of an Or over term predicates on one field.
func (p Predicate) Values() []string {
	out := make([]string, 0, len(p.children))
	for _, c := range p.children {
		if c.kind == KindTerm {
			out = append(out, c.value)
		}
	}
	return out
}

func (p Predicate) String() string {
	switch p.kind {
	case KindAll:
		return "*"
	case KindTerm:
		return fmt.Sprintf("%s:%q", p.field, p.value)
	case KindText:
		return fmt.Sprintf("%s~%s(%q)", p.field, p.operator, p.text.Raw())
	case KindAnd, KindOr:
		sep := " AND "
		if p.kind == KindOr {
			sep = " OR "
		}
		parts := make([]string, len(p.children))
		for i, c := range p.children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, sep) + ")"
	default:
		return "?"
	}
}

func clone(ps []Predicate) []Predicate {
	if ps == nil {
		return nil
	}
	out := make([]Predicate, len(ps))
	copy(out, ps)
	return out
}
