package catalog

import (
	"encoding/json"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
	bolt "go.etcd.io/bbolt"

	"github.com/pders01/hatut/internal/state"
)

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true

	author := bleve.NewTextFieldMapping()
	author.Analyzer = standard.Name
	author.Store = true

	storyID := bleve.NewTextFieldMapping()
	storyID.Analyzer = keyword.Name
	storyID.Store = true

	word := bleve.NewTextFieldMapping()
	word.Analyzer = keyword.Name
	word.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("author", author)
	dm.AddFieldMappingsAt("story_id", storyID)
	dm.AddFieldMappingsAt("word", word)

	im.DefaultMapping = dm
	return im
}

func docID(word, storyID string) string { return word + "/" + storyID }

func document(word string, r record) map[string]any {
	return map[string]any{
		"word":     word,
		"story_id": r.ID,
		"title":    r.Title,
		"author":   r.Author,
	}
}

func (c *Catalog) reindexAll() error {
	batch := c.idx.NewBatch()
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(collectionsBucket).ForEach(func(k, v []byte) error {
			var records []record
			if err := json.Unmarshal(v, &records); err != nil {
				return nil
			}
			for _, r := range records {
				if err := batch.Index(docID(string(k), r.ID), document(string(k), r)); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	return c.idx.Batch(batch)
}

func (c *Catalog) reindex(word string, previous, current []record) error {
	batch := c.idx.NewBatch()
	for _, r := range previous {
		batch.Delete(docID(word, r.ID))
	}
	for _, r := range current {
		if err := batch.Index(docID(word, r.ID), document(word, r)); err != nil {
			return err
		}
	}
	return c.idx.Batch(batch)
}

// Search finds stories across all collections whose title or author
// match query. Results are ordered by relevance, one per story id.
func (c *Catalog) Search(query string, limit int) ([]state.Entry, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return []state.Entry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.0)
		qs = append(qs, qtp)
		qa := bleve.NewMatchQuery(tok)
		qa.SetField("author")
		qa.SetBoost(1.5)
		qs = append(qs, qa)
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	req.Fields = []string{"story_id", "title", "author"}
	res, err := c.idx.Search(req)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(res.Hits))
	out := make([]state.Entry, 0, len(res.Hits))
	for _, h := range res.Hits {
		e := state.Entry{}
		if id, ok := h.Fields["story_id"].(string); ok {
			e.ID = id
		}
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		if t, ok := h.Fields["title"].(string); ok {
			e.Title = t
		}
		if a, ok := h.Fields["author"].(string); ok {
			e.Author = a
		}
		out = append(out, e)
	}
	return out, nil
}

// DocCount reports the number of indexed stories.
func (c *Catalog) DocCount() (int, error) {
	n, err := c.idx.DocCount()
	return int(n), err
}
