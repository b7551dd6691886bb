package chi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/djinnsearch/internal/domain/search/dimension"
	"github.com/kailas-cloud/djinnsearch/internal/domain/search/query"
)

// bindSearchParams binds the search query string. Binding failures are
// returned per parameter so they can be rendered as form errors.
func bindSearchParams(values url.Values) (SearchParams, map[string]string) {
	var p SearchParams
	errs := make(map[string]string)

	bind := func(name string, dest any) {
		if err := runtime.BindQueryParameter("form", true, false, name, values, dest); err != nil {
			errs[name] = fmt.Sprintf("invalid value: %v", err)
		}
	}

	bind("q", &p.Q)
	bind("content_type", &p.ContentType)
	bind("meta_type", &p.MetaType)
	bind("category_slug", &p.CategorySlug)
	bind("category", &p.Category)
	bind("owner", &p.Owner)
	bind("group", &p.Group)
	bind("keywords", &p.Keywords)
	bind("order_by", &p.OrderBy)
	bind("page", &p.Page)

	if len(errs) == 0 {
		return p, nil
	}
	return p, errs
}

// toInput converts bound parameters into unvalidated search input.
func (p SearchParams) toInput() query.Input {
	in := query.Input{
		Text:     deref(p.Q),
		Keywords: deref(p.Keywords),
		OrderBy:  deref(p.OrderBy),
		Filters:  make(map[dimension.Dimension][]string),
	}
	if p.Page != nil {
		in.Page = *p.Page
	}

	set := func(d dimension.Dimension, values []string) {
		if len(values) > 0 {
			in.Filters[d] = append(in.Filters[d], values...)
		}
	}
	set(dimension.ContentType, p.ContentType)
	set(dimension.MetaType, p.MetaType)
	set(dimension.Category, p.CategorySlug)
	set(dimension.Category, p.Category)
	set(dimension.Owner, p.Owner)
	set(dimension.Group, p.Group)

	return in
}

// bindGroupPath binds the {group} path parameter. Group ids are numeric.
func bindGroupPath(raw string) (string, error) {
	var group int64
	err := runtime.BindStyledParameterWithOptions("simple", "group", raw, &group, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter group: %w", err)
	}
	return strconv.FormatInt(group, 10), nil
}

// bindOwnerPath binds the {owner} path parameter.
func bindOwnerPath(raw string) (string, error) {
	var owner string
	err := runtime.BindStyledParameterWithOptions("simple", "owner", raw, &owner, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", fmt.Errorf("invalid format for parameter owner: %w", err)
	}
	return owner, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
