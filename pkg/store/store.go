// Package store persists scan results and findings between runs. Scan
// results live in bbolt; findings are additionally indexed in bleve for
// full-text search. The scanner itself never reads the store; it exists so
// the CLI and MCP surfaces can answer questions without rescanning.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/debtscope/debtscope/pkg/analysis"
	"github.com/debtscope/debtscope/pkg/report"
)

// ErrNotFound is returned when a scan or finding does not exist.
var ErrNotFound = errors.New("not found")

// Bucket names.
var (
	BucketScans    = []byte("scans")
	BucketFindings = []byte("findings")
	BucketMeta     = []byte("meta")
)

const metaLatestScan = "latest_scan"

// Store is the bbolt-backed scan store with a bleve search index alongside.
type Store struct {
	db     *bolt.DB
	search *SearchIndex
}

// Open opens or creates the store under dir. The directory is created if
// missing; the database and search index live side by side inside it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "debtscope.db"), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{BucketScans, BucketFindings, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing buckets: %w", err)
	}

	search, err := OpenSearchIndex(filepath.Join(dir, "search.bleve"))
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, search: search}, nil
}

// Close closes the database and the search index.
func (s *Store) Close() error {
	serr := s.search.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return serr
}

// SaveScan persists a scan result, replaces the findings set with the scan's
// findings, and marks it as the latest scan. Bolt mutations commit first;
// search indexing follows so a failed transaction never leaves the index
// ahead of the database.
func (s *Store) SaveScan(res *report.ScanResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encoding scan: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(BucketScans).Put([]byte(res.ID), data); err != nil {
			return err
		}
		if err := tx.Bucket(BucketMeta).Put([]byte(metaLatestScan), []byte(res.ID)); err != nil {
			return err
		}

		fb := tx.Bucket(BucketFindings)
		c := fb.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := fb.Delete(k); err != nil {
				return err
			}
		}
		for _, f := range res.Findings {
			fd, err := json.Marshal(f)
			if err != nil {
				return err
			}
			if err := fb.Put([]byte(f.ID), fd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving scan: %w", err)
	}

	return s.search.Reindex(res.Findings)
}

// GetScan loads one scan result by ID.
func (s *Store) GetScan(id string) (*report.ScanResult, error) {
	var res *report.ScanResult
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketScans).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		res = &report.ScanResult{}
		return json.Unmarshal(data, res)
	})
	return res, err
}

// LatestScan loads the most recently saved scan result.
func (s *Store) LatestScan() (*report.ScanResult, error) {
	var id string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketMeta).Get([]byte(metaLatestScan))
		if data == nil {
			return ErrNotFound
		}
		id = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetScan(id)
}

// ScanSummary is the per-scan row returned by ListScans.
type ScanSummary struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	TotalFiles    int       `json:"totalFiles"`
	TotalFindings int       `json:"totalFindings"`
	Rating        string    `json:"rating"`
	DebtMinutes   int       `json:"debtMinutes"`
}

// ListScans returns summaries of stored scans, newest first. ULID keys sort
// chronologically, so reverse key order is reverse time order.
func (s *Store) ListScans(limit int) ([]ScanSummary, error) {
	var out []ScanSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(BucketScans).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var res report.ScanResult
			if err := json.Unmarshal(v, &res); err != nil {
				return err
			}
			out = append(out, ScanSummary{
				ID:            res.ID,
				Timestamp:     res.Timestamp,
				TotalFiles:    res.Summary.TotalFiles,
				TotalFindings: res.Summary.TotalFindings,
				Rating:        res.Debt.Rating,
				DebtMinutes:   res.Debt.TotalMinutes,
			})
			if limit > 0 && len(out) >= limit {
				return nil
			}
		}
		return nil
	})
	return out, err
}

// FilterOptions narrows ListFindings and SearchFindings results.
type FilterOptions struct {
	Severity string
	Kind     string
	File     string
	Limit    int
}

func (o FilterOptions) matches(f *analysis.Finding) bool {
	if o.Severity != "" && f.Severity != o.Severity {
		return false
	}
	if o.Kind != "" && f.Kind != o.Kind {
		return false
	}
	if o.File != "" && f.FilePath != o.File {
		return false
	}
	return true
}

var errStopIteration = errors.New("stop iteration")

// ListFindings returns stored findings matching the filter, in key order.
func (s *Store) ListFindings(opts FilterOptions) ([]*analysis.Finding, error) {
	var out []*analysis.Finding
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketFindings).ForEach(func(k, v []byte) error {
			var f analysis.Finding
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			if !opts.matches(&f) {
				return nil
			}
			out = append(out, &f)
			if opts.Limit > 0 && len(out) >= opts.Limit {
				return errStopIteration
			}
			return nil
		})
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return nil, err
	}
	return out, nil
}

// SearchHit is one full-text search match resolved to its finding.
type SearchHit struct {
	ID      string            `json:"id"`
	Score   float64           `json:"score"`
	Finding *analysis.Finding `json:"finding"`
}

// SearchFindings runs a full-text query over finding messages and resolves
// the hits against the database, applying the filter afterwards.
func (s *Store) SearchFindings(query string, opts FilterOptions) ([]*SearchHit, error) {
	hits, err := s.search.Query(query, opts.Limit)
	if err != nil {
		return nil, err
	}

	var out []*SearchHit
	err = s.db.View(func(tx *bolt.Tx) error {
		fb := tx.Bucket(BucketFindings)
		for _, h := range hits {
			data := fb.Get([]byte(h.ID))
			if data == nil {
				continue
			}
			var f analysis.Finding
			if err := json.Unmarshal(data, &f); err != nil {
				return err
			}
			if !opts.matches(&f) {
				continue
			}
			out = append(out, &SearchHit{ID: h.ID, Score: h.Score, Finding: &f})
		}
		return nil
	})
	return out, err
}

// Stats returns finding counts by severity and kind for the stored set.
func (s *Store) Stats() (bySeverity, byKind map[string]int, err error) {
	bySeverity = map[string]int{}
	byKind = map[string]int{}
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketFindings).ForEach(func(k, v []byte) error {
			var f analysis.Finding
			if err := json.Unmarshal(v, &f); err != nil {
				return err
			}
			bySeverity[f.Severity]++
			byKind[f.Kind]++
			return nil
		})
	})
	return bySeverity, byKind, err
}
