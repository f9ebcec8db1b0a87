// Package catalog keeps story collections in a local bbolt file, keyed by
// filter word, and indexes them with bleve for word lookups.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/hatut/internal/state"
)

var collectionsBucket = []byte("collections")

// ErrNotFound is returned for a word without a stored collection.
var ErrNotFound = errors.New("collection not found")

type Catalog struct {
	db  *bolt.DB
	idx bleve.Index
}

// Open opens or creates the catalog at path and builds its search index.
func Open(path string, timeout time.Duration) (*Catalog, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(collectionsBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index: %w", err)
	}

	c := &Catalog{db: db, idx: idx}
	if err := c.reindexAll(); err != nil {
		c.Close()
		return nil, fmt.Errorf("indexing catalog: %w", err)
	}
	return c, nil
}

func (c *Catalog) Close() error {
	idxErr := c.idx.Close()
	if err := c.db.Close(); err != nil {
		return err
	}
	return idxErr
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Import stores entries as the collection for word, replacing any previous one.
func (c *Catalog) Import(word string, entries []state.Entry) error {
	word = normalizeWord(word)
	if word == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	var previous []record
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(collectionsBucket)
		if data := b.Get([]byte(word)); data != nil {
			if err := json.Unmarshal(data, &previous); err != nil {
				return fmt.Errorf("decoding collection %q: %w", word, err)
			}
		}
		data, err := json.Marshal(toRecords(entries))
		if err != nil {
			return err
		}
		return b.Put([]byte(word), data)
	})
	if err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}

	return c.reindex(word, previous, toRecords(entries))
}

// Collection returns the stories stored for word in their stored order.
func (c *Catalog) Collection(word string) ([]state.Entry, error) {
	word = normalizeWord(word)

	var records []record
	err := c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(collectionsBucket).Get([]byte(word))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, word)
		}
		return json.Unmarshal(data, &records)
	})
	if err != nil {
		return nil, err
	}
	return toEntries(records), nil
}

// Words lists the stored collection names, sorted.
func (c *Catalog) Words() ([]string, error) {
	var words []string
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(collectionsBucket).ForEach(func(k, _ []byte) error {
			words = append(words, string(k))
			return nil
		})
	})
	sort.Strings(words)
	return words, err
}

// Delete removes the collection for word.
func (c *Catalog) Delete(word string) error {
	word = normalizeWord(word)

	var previous []record
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(collectionsBucket)
		data := b.Get([]byte(word))
		if data == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, word)
		}
		if err := json.Unmarshal(data, &previous); err != nil {
			return err
		}
		return b.Delete([]byte(word))
	})
	if err != nil {
		return err
	}
	return c.reindex(word, previous, nil)
}
