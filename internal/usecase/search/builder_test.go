package search

import (
	"errors"
	"slices"
	"testing"

	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/order"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/profile"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
)

func mustQuery(t *testing.T, in query.Input) query.Query {
	t.Helper()
	q, err := query.New(in, query.Rules{})
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func findFilter(req request.Request, field string) (predicate.Predicate, bool) {
	for _, f := range req.Filters() {
		if f.Field() == field {
			return f, true
		}
	}
	return predicate.Predicate{}, false
}

func TestBuild_AccessTokens(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	alice := mustPrincipal(t, "alice", []int64{5, 9}, false)

	req, err := b.Build(mustQuery(t, query.Input{Text: "budget"}), alice, profile.Default(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, ok := findFilter(req, domdoc.FieldAllowList)
	if !ok {
		t.Fatal("expected allow-list filter")
	}
	got := f.Values()
	slices.Sort(got)
	want := []string{"group_5", "group_9", "group_users", "user_alice"}
	if !slices.Equal(got, want) {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}

func TestBuild_SuperuserSkipsAccessFilter(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	admin := mustPrincipal(t, "root", nil, true)

	req, err := b.Build(mustQuery(t, query.Input{Text: "budget"}), admin, profile.Default(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findFilter(req, domdoc.FieldAllowList); ok {
		t.Error("superuser request must not carry an allow-list filter")
	}
}

func TestBuild_ProfileWithoutAccessFilter(t *testing.T) {
	prof, err := profile.New("public", false, dimension.All(), nil, false)
	if err != nil {
		t.Fatalf("profile.New: %v", err)
	}
	b := NewBuilder(BuilderConfig{})

	req, err := b.Build(mustQuery(t, query.Input{Text: "budget"}), mustPrincipal(t, "bob", nil, false), prof, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := findFilter(req, domdoc.FieldAllowList); ok {
		t.Error("expected no allow-list filter")
	}
}

func TestBuild_EmptyQuery(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	_, err := b.Build(mustQuery(t, query.Input{Text: "   "}), mustPrincipal(t, "bob", nil, false), profile.Default(), "")
	if !errors.Is(err, query.ErrNoQuery) {
		t.Fatalf("expected ErrNoQuery, got %v", err)
	}
}

func TestBuild_MatchAndOperator(t *testing.T) {
	tests := []struct {
		name string
		op   predicate.Operator
		want predicate.Operator
	}{
		{"default is AND", "", predicate.OperatorAnd},
		{"configured OR", predicate.OperatorOr, predicate.OperatorOr},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(BuilderConfig{DefaultOperator: tc.op})
			req, err := b.Build(mustQuery(t, query.Input{Text: "annual budget"}), mustPrincipal(t, "bob", nil, false), profile.Default(), "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			m := req.Match()
			if m.Kind() != predicate.KindText {
				t.Fatalf("match kind = %v, want text", m.Kind())
			}
			if m.Field() != domdoc.FieldText {
				t.Errorf("match field = %q", m.Field())
			}
			if m.Operator() != tc.want {
				t.Errorf("operator = %q, want %q", m.Operator(), tc.want)
			}
			if !slices.Equal(m.Query().Terms(), []string{"annual", "budget"}) {
				t.Errorf("terms = %v", m.Query().Terms())
			}
		})
	}
}

func TestBuild_DimensionFilters(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	q := mustQuery(t, query.Input{
		Text: "budget",
		Filters: map[dimension.Dimension][]string{
			dimension.ContentType: {"page", "file"},
			dimension.Owner:       {"carol"},
		},
		Keywords: "finance",
	})

	t.Run("default profile", func(t *testing.T) {
		req, err := b.Build(q, mustPrincipal(t, "bob", nil, false), profile.Default(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ct, ok := findFilter(req, domdoc.FieldContentType)
		if !ok {
			t.Fatal("expected content type filter")
		}
		if got := ct.Values(); !slices.Equal(got, []string{"page", "file"}) {
			t.Errorf("content types = %v", got)
		}
		if _, ok := findFilter(req, domdoc.FieldOwner); !ok {
			t.Error("expected owner filter")
		}
		kw, ok := findFilter(req, domdoc.FieldKeywords)
		if !ok || kw.Value() != "finance" {
			t.Errorf("keywords filter = %v, %v", kw, ok)
		}
	})

	t.Run("group profile ignores unexposed dimensions", func(t *testing.T) {
		req, err := b.Build(q, mustPrincipal(t, "bob", nil, false), profile.GroupContent(), "5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := findFilter(req, domdoc.FieldOwner); ok {
			t.Error("owner is not exposed by the group profile")
		}
		g, ok := findFilter(req, domdoc.FieldGroup)
		if !ok || g.Kind() != predicate.KindTerm || g.Value() != "5" {
			t.Errorf("group filter = %v, %v", g, ok)
		}
	})
}

func TestBuild_FixedDimensionRequired(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	_, err := b.Build(mustQuery(t, query.Input{Text: "budget"}), mustPrincipal(t, "bob", nil, false), profile.UserContent(), "")

	var ve *query.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields[string(dimension.Owner)]; !ok {
		t.Errorf("expected owner field error, got %v", ve.Fields)
	}
}

func TestBuild_FacetsOrderPaging(t *testing.T) {
	b := NewBuilder(BuilderConfig{PerPage: 10})
	q := mustQuery(t, query.Input{Text: "budget", OrderBy: string(order.Changed), Page: 3})

	req, err := b.Build(q, mustPrincipal(t, "bob", nil, false), profile.GroupContent(), "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(req.Facets(), profile.GroupContent().Dimensions()) {
		t.Errorf("facets = %v", req.Facets())
	}
	if req.Order() != order.Changed {
		t.Errorf("order = %q", req.Order())
	}
	if req.Page() != 3 || req.PerPage() != 10 || req.Offset() != 20 {
		t.Errorf("page=%d perPage=%d offset=%d", req.Page(), req.PerPage(), req.Offset())
	}
	if req.Profile() != profile.NameGroupContent {
		t.Errorf("profile = %q", req.Profile())
	}
}

func TestBuild_SpellingOption(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		prof     profile.Profile
		fixed    string
		expected bool
	}{
		{"enabled with spelling profile", true, profile.Default(), "", true},
		{"enabled with group profile", true, profile.GroupContent(), "5", false},
		{"disabled globally", false, profile.Default(), "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(BuilderConfig{Spelling: tc.enabled})
			req, err := b.Build(mustQuery(t, query.Input{Text: "budgte"}), mustPrincipal(t, "bob", nil, false), tc.prof, tc.fixed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			sq := req.RunOptions().SpellingQuery
			if (sq != nil) != tc.expected {
				t.Fatalf("spelling query set = %v, want %v", sq != nil, tc.expected)
			}
			if sq != nil && *sq != "budgte" {
				t.Errorf("spelling query = %q", *sq)
			}
		})
	}
}

func TestRelax(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	bob := mustPrincipal(t, "bob", nil, false)

	req, err := b.Build(mustQuery(t, query.Input{Text: "foo bar"}), bob, profile.Default(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	relaxed, ok := b.Relax(req)
	if !ok {
		t.Fatal("expected relaxation")
	}
	if !relaxed.Tainted() {
		t.Error("relaxed request must be tainted")
	}
	if req.Tainted() {
		t.Error("original request must not be modified")
	}

	m := relaxed.Match()
	if m.Kind() != predicate.KindOr {
		t.Fatalf("match kind = %v, want or", m.Kind())
	}
	var terms []string
	for _, c := range m.Children() {
		if c.Kind() != predicate.KindText {
			t.Fatalf("child kind = %v", c.Kind())
		}
		terms = append(terms, c.Query().Terms()...)
	}
	if !slices.Equal(terms, []string{"foo", "bar"}) {
		t.Errorf("relaxed terms = %v", terms)
	}
	if len(relaxed.Filters()) != len(req.Filters()) {
		t.Error("relaxation must keep filters")
	}

	if _, ok := b.Relax(relaxed); ok {
		t.Error("a relaxed request must not relax again")
	}
}

func TestRelax_KeepsExclusionsAndPhrases(t *testing.T) {
	b := NewBuilder(BuilderConfig{})
	bob := mustPrincipal(t, "bob", nil, false)

	req, err := b.Build(mustQuery(t, query.Input{Text: `foo -alpha "annual budget"`}), bob, profile.Default(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	relaxed, ok := b.Relax(req)
	if !ok {
		t.Fatal("expected relaxation")
	}

	children := relaxed.Match().Children()
	if len(children) != 2 {
		t.Fatalf("alternatives = %d, want 2", len(children))
	}
	var terms, phrases []string
	for _, c := range children {
		aq := c.Query()
		if aq.IsEmpty() {
			t.Errorf("alternative %q has nothing to match", aq.Raw())
		}
		if !slices.Equal(aq.Excluded(), []string{"alpha"}) {
			t.Errorf("alternative %q excluded = %v, want [alpha]", aq.Raw(), aq.Excluded())
		}
		terms = append(terms, aq.Terms()...)
		phrases = append(phrases, aq.Phrases()...)
	}
	if !slices.Equal(terms, []string{"foo"}) {
		t.Errorf("terms = %v", terms)
	}
	if !slices.Equal(phrases, []string{"annual budget"}) {
		t.Errorf("phrases = %v", phrases)
	}
}

func TestRelax_NotApplicable(t *testing.T) {
	bob := mustPrincipal(t, "bob", nil, false)

	tests := []struct {
		name string
		cfg  BuilderConfig
		text string
	}{
		{"single term", BuilderConfig{}, "budget"},
		{"single term with exclusion", BuilderConfig{}, "foo -alpha"},
		{"single phrase", BuilderConfig{}, `"annual budget"`},
		{"already disjunctive", BuilderConfig{DefaultOperator: predicate.OperatorOr}, "foo bar"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(tc.cfg)
			req, err := b.Build(mustQuery(t, query.Input{Text: tc.text}), bob, profile.Default(), "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := b.Relax(req); ok {
				t.Error("expected no relaxation")
			}
		})
	}
}
