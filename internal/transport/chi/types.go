package chi

// ErrorResponseCode is the machine-readable error code in ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest           ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized         ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed     ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnknownProfile       ErrorResponseCode = "unknown_profile"
	ErrorResponseCodeSearchUnavailable    ErrorResponseCode = "search_unavailable"
	ErrorResponseCodeDirectoryUnavailable ErrorResponseCode = "directory_unavailable"
	ErrorResponseCodeInternalError        ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchParams are the query parameters of the search endpoints.
// Repeatable parameters bind to slices.
type SearchParams struct {
	Q            *string  `form:"q"`
	ContentType  []string `form:"content_type"`
	MetaType     []string `form:"meta_type"`
	CategorySlug []string `form:"category_slug"`
	// Category is an alias of CategorySlug.
	Category []string `form:"category"`
	Owner    []string `form:"owner"`
	Group    []string `form:"group"`
	Keywords *string  `form:"keywords"`
	OrderBy  *string  `form:"order_by"`
	Page     *int     `form:"page"`
}

// SearchResponse is the rendered search payload.
type SearchResponse struct {
	NoQuery    bool                    `json:"no_query"`
	Query      string                  `json:"query"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	PerPage    int                     `json:"per_page"`
	HasNext    bool                    `json:"has_next"`
	Hits       []SearchHit             `json:"hits"`
	Facets     map[string][]FacetValue `json:"facets"`
	Suggestion string                  `json:"suggestion,omitempty"`
	// IsTaintedAndOr is set when the results come from the relaxed OR query.
	IsTaintedAndOr bool              `json:"is_tainted_and_or"`
	Errors         map[string]string `json:"errors,omitempty"`
}

// SearchHit is one result row.
type SearchHit struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Fields map[string]any `json:"fields,omitempty"`
}

// FacetValue is one facet bucket.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
