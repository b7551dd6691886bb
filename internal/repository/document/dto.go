package document

import (
	"strings"
	"time"

	"github.com/kailas-cloud/djinnsearch/internal/db"
	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
)

// IndexName is the name of the content index.
const IndexName = "djinn-content"

// Schema returns the content index definition.
func Schema() *db.IndexDefinition {
	return db.NewIndex(IndexName).
		Analyzer("en").
		Text(domdoc.FieldText, false).
		Text(domdoc.FieldTitle, true).
		Keyword(true, domdoc.FieldTitleExact, domdoc.FieldURL, domdoc.FieldContentType, domdoc.FieldMetaType, domdoc.FieldCategory, domdoc.FieldOwner, domdoc.FieldGroup).
		Keyword(false, domdoc.FieldKeywords, domdoc.FieldAllowList).
		DateTime(domdoc.FieldChanged, true).
		DateTime(domdoc.FieldPublished, true).
		Spelling(domdoc.FieldText).
		MustBuild()
}

// StoredFields returns the fields returned with every hit.
func StoredFields() []string {
	return Schema().StoredFields()
}

// buildIndexDoc flattens a domain Document into index fields. The title is
// folded into the searchable text. Empty values are omitted.
func buildIndexDoc(doc *domdoc.Document) db.IndexDoc {
	m := make(map[string]any, 13)

	body := doc.Text()
	if doc.Title() != "" {
		body = strings.TrimSpace(doc.Title() + "\n\n" + body)
	}
	m[domdoc.FieldText] = body

	setString(m, domdoc.FieldTitle, doc.Title())
	setString(m, domdoc.FieldTitleExact, strings.ToLower(doc.Title()))
	setString(m, domdoc.FieldURL, doc.URL())
	setString(m, domdoc.FieldContentType, doc.ContentType())
	setString(m, domdoc.FieldMetaType, doc.MetaType())
	setString(m, domdoc.FieldCategory, doc.Category())
	setString(m, domdoc.FieldOwner, doc.Owner())
	setString(m, domdoc.FieldGroup, doc.Group())
	if kw := doc.Keywords(); len(kw) > 0 {
		m[domdoc.FieldKeywords] = kw
	}
	m[domdoc.FieldAllowList] = doc.AllowList()
	setTime(m, domdoc.FieldChanged, doc.Changed())
	setTime(m, domdoc.FieldPublished, doc.Published())

	return db.IndexDoc{ID: doc.ID(), Fields: m}
}

func setString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func setTime(m map[string]any, key string, t time.Time) {
	if !t.IsZero() {
		m[key] = t.UTC().Format(time.RFC3339)
	}
}
