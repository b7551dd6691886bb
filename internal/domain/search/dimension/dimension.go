package dimension

import "github.com/kailas-cloud/djinnsearch/internal/domain/document"

// Dimension is a categorical attribute a search can be filtered and faceted by.
type Dimension string

// Categorical dimensions.
const (
	ContentType Dimension = "content_type"
	MetaType    Dimension = "meta_type"
	Category    Dimension = "category"
	Owner       Dimension = "owner"
	Group       Dimension = "group"
)

var fields = map[Dimension]string{
	ContentType: document.FieldContentType,
	MetaType:    document.FieldMetaType,
	Category:    document.FieldCategory,
	Owner:       document.FieldOwner,
	Group:       document.FieldGroup,
}

// All returns every dimension in presentation order.
func All() []Dimension {
	return []Dimension{ContentType, MetaType, Category, Owner, Group}
}

// IsValid checks if the dimension is one of the supported values.
func (d Dimension) IsValid() bool {
	_, ok := fields[d]
	return ok
}

// Field returns the index field that stores the dimension.
func (d Dimension) Field() string { return fields[d] }
