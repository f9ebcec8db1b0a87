package source

import (
	"context"
	"errors"

	"github.com/pders01/hatut/internal/catalog"
	"github.com/pders01/hatut/internal/state"
)

// Catalog serves collections from the local catalog. A word without a
// stored collection falls back to a title/author search.
type Catalog struct {
	catalog *catalog.Catalog
	limit   int
}

func NewCatalog(c *catalog.Catalog, limit int) *Catalog {
	return &Catalog{catalog: c, limit: limit}
}

func (c *Catalog) Stories(ctx context.Context, filter string) ([]state.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := c.catalog.Collection(filter)
	if errors.Is(err, catalog.ErrNotFound) {
		return c.catalog.Search(filter, c.limit)
	}
	return entries, err
}

func (c *Catalog) Close() error {
	return c.catalog.Close()
}
