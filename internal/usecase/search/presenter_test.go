package search

import (
	"reflect"
	"testing"

	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/autoquery"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/request"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/result"
)

func textRequest(text string) request.Request {
	return request.New(text, predicate.Text(domdoc.FieldText, autoquery.Parse(text), predicate.OperatorAnd))
}

func TestPresent_Paging(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		page    int
		hasNext bool
	}{
		{"first of many", 45, 1, true},
		{"middle", 45, 2, true},
		{"last", 45, 3, false},
		{"exact fit", 40, 2, false},
		{"empty", 0, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := textRequest("budget").WithPage(tc.page, 20)
			p := NewPresenter().Present(result.NewSet(tc.total, nil, nil, ""), req)

			if p.HasNext != tc.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tc.hasNext)
			}
			if p.Page != tc.page || p.PerPage != 20 || p.Total != tc.total {
				t.Errorf("page=%d perPage=%d total=%d", p.Page, p.PerPage, p.Total)
			}
			if p.NoQuery {
				t.Error("NoQuery must be false for an executed request")
			}
		})
	}
}

func TestPresent_Suggestion(t *testing.T) {
	rs := result.NewSet(0, nil, nil, "budget")

	t.Run("requested", func(t *testing.T) {
		text := "budgte"
		req := textRequest(text).WithRunOptions(request.RunOptions{SpellingQuery: &text})
		if got := NewPresenter().Present(rs, req).Suggestion; got != "budget" {
			t.Errorf("suggestion = %q", got)
		}
	})

	t.Run("not requested", func(t *testing.T) {
		if got := NewPresenter().Present(rs, textRequest("budgte")).Suggestion; got != "" {
			t.Errorf("suggestion = %q, want empty", got)
		}
	})
}

func TestPresent_Tainted(t *testing.T) {
	req := textRequest("foo bar")
	relaxed, ok := NewBuilder(BuilderConfig{}).Relax(req)
	if !ok {
		t.Fatal("expected relaxation")
	}

	p := NewPresenter().Present(hits(3), relaxed)
	if !p.Tainted {
		t.Error("expected tainted payload")
	}
	if len(p.Hits) != 3 {
		t.Errorf("hits = %d", len(p.Hits))
	}
}

func TestPresent_Idempotent(t *testing.T) {
	facets := map[dimension.Dimension][]result.FacetValue{
		dimension.ContentType: {{Value: "page", Count: 2}, {Value: "file", Count: 1}},
	}
	rs := result.NewSet(3, hits(3).Hits(), facets, "")
	req := textRequest("budget")

	pr := NewPresenter()
	first := pr.Present(rs, req)
	second := pr.Present(rs, req)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Present is not idempotent:\n%+v\n%+v", first, second)
	}
	if first.Facets[dimension.ContentType][0].Value != "page" {
		t.Errorf("facets = %v", first.Facets)
	}
}

func TestNoQuery(t *testing.T) {
	errs := map[string]string{"q": "query too long"}
	p := NewPresenter().NoQuery("abc", errs)

	if !p.NoQuery {
		t.Fatal("expected NoQuery")
	}
	if p.Query != "abc" || p.Errors["q"] != "query too long" {
		t.Errorf("payload = %+v", p)
	}

	errs["q"] = "changed"
	if p.Errors["q"] != "query too long" {
		t.Error("payload errors must be a copy")
	}
}
