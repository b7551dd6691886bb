package document

// Index field names shared by the indexer and the query side.
const (
	FieldText        = "text"
	FieldTitle       = "title"
	FieldTitleExact  = "title_exact"
	FieldURL         = "url"
	FieldContentType = "content_type"
	FieldMetaType    = "meta_type"
	FieldCategory    = "category_slug"
	FieldOwner       = "owner"
	FieldGroup       = "group"
	FieldKeywords    = "keywords"
	FieldAllowList   = "allow_list"
	FieldChanged     = "changed"
	FieldPublished   = "published"
)
