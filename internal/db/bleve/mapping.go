package bleve

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/djinnsearch/internal/db"
)

// SpellingField is the dictionary suggestions are drawn from. Text fields
// flagged for spelling are indexed into it a second time, lowercased but
// not stemmed, so dictionary terms are real words.
const SpellingField = "spelling"

// buildMapping translates an index definition into a static bleve mapping.
func buildMapping(def *db.IndexDefinition) (mapping.IndexMapping, error) {
	defaultAnalyzer := def.DefaultAnalyzer
	if defaultAnalyzer == "" {
		defaultAnalyzer = en.AnalyzerName
	}

	doc := bleve.NewDocumentStaticMapping()
	for _, f := range def.Fields {
		var fm *mapping.FieldMapping
		switch f.Type {
		case db.IndexFieldText:
			fm = bleve.NewTextFieldMapping()
			fm.Analyzer = defaultAnalyzer
			if f.Analyzer != "" {
				fm.Analyzer = f.Analyzer
			}
		case db.IndexFieldKeyword:
			fm = bleve.NewKeywordFieldMapping()
			fm.IncludeInAll = false
		case db.IndexFieldDateTime:
			fm = bleve.NewDateTimeFieldMapping()
			fm.IncludeInAll = false
		default:
			return nil, fmt.Errorf("field %s: unsupported type %d", f.Name, f.Type)
		}
		fm.Store = f.Store

		mappings := []*mapping.FieldMapping{fm}
		if f.Spelling {
			sp := bleve.NewTextFieldMapping()
			sp.Name = SpellingField
			sp.Analyzer = standard.Name
			sp.Store = false
			sp.IncludeInAll = false
			sp.IncludeTermVectors = false
			mappings = append(mappings, sp)
		}
		doc.AddFieldMappingsAt(f.Name, mappings...)
	}

	im := bleve.NewIndexMapping()
	im.DefaultMapping = doc
	im.DefaultAnalyzer = defaultAnalyzer
	im.IndexDynamic = false
	im.StoreDynamic = false
	im.DocValuesDynamic = false
	im.ScoringModel = "bm25"

	if err := im.Validate(); err != nil {
		return nil, fmt.Errorf("validate mapping: %w", err)
	}
	return im, nil
}
