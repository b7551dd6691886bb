// Package ingest decodes index documents from JSON files.
package ingest

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/djinnsearch/internal/domain"
	domdoc "github.com/kailas-cloud/djinnsearch/internal/domain/document"
)

// Record is the JSON form of an index document.
type Record struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	URL          string     `json:"url"`
	ContentType  string     `json:"content_type"`
	MetaType     string     `json:"meta_type"`
	CategorySlug string     `json:"category_slug"`
	Owner        string     `json:"owner"`
	Group        string     `json:"group"`
	Keywords     []string   `json:"keywords"`
	AllowList    []string   `json:"allow_list"`
	Changed      *time.Time `json:"changed"`
	Published    *time.Time `json:"published"`
}

// Document validates the record and converts it into a domain document.
func (r Record) Document() (domdoc.Document, error) {
	f := domdoc.Fields{
		Title:       r.Title,
		Text:        r.Text,
		URL:         r.URL,
		ContentType: r.ContentType,
		MetaType:    r.MetaType,
		Category:    r.CategorySlug,
		Owner:       r.Owner,
		Group:       r.Group,
		Keywords:    r.Keywords,
		AllowList:   r.AllowList,
	}
	if r.Changed != nil {
		f.Changed = *r.Changed
	}
	if r.Published != nil {
		f.Published = *r.Published
	}

	doc, err := domdoc.New(r.ID, f)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidDocument, r.ID, err)
	}
	return doc, nil
}
