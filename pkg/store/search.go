// Full-text findings search using bleve (pure Go, self-contained).
package store

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/debtscope/debtscope/pkg/analysis"
)

// SearchIndex wraps a bleve index over finding messages.
type SearchIndex struct {
	index bleve.Index
	path  string
}

// QueryHit is one raw search match before database resolution.
type QueryHit struct {
	ID    string
	Score float64
}

const defaultQueryLimit = 20

func buildFindingsMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer("standard_lower", map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("creating analyzer: %w", err)
	}

	findingMapping := bleve.NewDocumentMapping()

	messageField := bleve.NewTextFieldMapping()
	messageField.Analyzer = "standard_lower"
	messageField.Store = true
	findingMapping.AddFieldMappingsAt("message", messageField)

	for _, field := range []string{"kind", "severity", "file"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = "standard_lower"
		findingMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.DefaultMapping = findingMapping
	return indexMapping, nil
}

// OpenSearchIndex opens or creates the bleve index at path. An empty path
// yields an in-memory index, used by tests.
func OpenSearchIndex(path string) (*SearchIndex, error) {
	var index bleve.Index
	var err error

	switch {
	case path == "":
		m, merr := buildFindingsMapping()
		if merr != nil {
			return nil, merr
		}
		index, err = bleve.NewMemOnly(m)
	default:
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			m, merr := buildFindingsMapping()
			if merr != nil {
				return nil, merr
			}
			index, err = bleve.New(path, m)
		} else {
			index, err = bleve.Open(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("opening search index: %w", err)
	}
	return &SearchIndex{index: index, path: path}, nil
}

// Close closes the index.
func (s *SearchIndex) Close() error {
	return s.index.Close()
}

type findingDoc struct {
	Message  string `json:"message"`
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	File     string `json:"file"`
}

// Reindex replaces the index contents with the given findings, batched.
func (s *SearchIndex) Reindex(findings []*analysis.Finding) error {
	// Drop existing documents first; the index always mirrors the latest
	// finding set.
	existing := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
	existing.Size = 10000
	existing.Fields = []string{}
	res, err := s.index.Search(existing)
	if err != nil {
		return fmt.Errorf("enumerating index: %w", err)
	}

	batch := s.index.NewBatch()
	for _, hit := range res.Hits {
		batch.Delete(hit.ID)
	}
	for _, f := range findings {
		if err := batch.Index(f.ID, findingDoc{
			Message:  f.Message,
			Kind:     f.Kind,
			Severity: f.Severity,
			File:     f.FilePath,
		}); err != nil {
			return fmt.Errorf("indexing finding %s: %w", f.ID, err)
		}
	}
	if err := s.index.Batch(batch); err != nil {
		return fmt.Errorf("applying index batch: %w", err)
	}
	return nil
}

// Query searches finding messages with exact and fuzzy matching combined.
func (s *SearchIndex) Query(queryStr string, limit int) ([]QueryHit, error) {
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	matchQuery := bleve.NewMatchQuery(queryStr)
	matchQuery.SetField("message")

	fuzzyQuery := bleve.NewFuzzyQuery(queryStr)
	fuzzyQuery.SetField("message")
	fuzzyQuery.SetFuzziness(1)

	anyField := bleve.NewQueryStringQuery(queryStr)

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery, anyField))
	req.Size = limit

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]QueryHit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, QueryHit{ID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}
