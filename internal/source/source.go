// Package source retrieves story collections for a filter word.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/pders01/hatut/internal/catalog"
	"github.com/pders01/hatut/internal/config"
	"github.com/pders01/hatut/internal/state"
)

// ErrMalformed marks a payload that could not be decoded into stories.
var ErrMalformed = errors.New("malformed payload")

// Source returns the collection selected by filter. The filter arrives
// lower-cased from the reducer.
type Source interface {
	Stories(ctx context.Context, filter string) ([]state.Entry, error)
}

// Closer is implemented by sources holding resources.
type Closer interface {
	Close() error
}

// New builds the source configured by cfg.Source.Mode.
func New(cfg *config.Config) (Source, error) {
	switch cfg.Source.Mode {
	case config.SourceFixture:
		return NewFixture()
	case config.SourceHTTP:
		return NewHTTP(cfg)
	case config.SourceCatalog:
		c, err := catalog.Open(cfg.Catalog.Path, cfg.Catalog.Timeout)
		if err != nil {
			return nil, err
		}
		return NewCatalog(c, cfg.Catalog.SearchLimit), nil
	default:
		return nil, fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
}
