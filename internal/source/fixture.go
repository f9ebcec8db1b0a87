package source

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/pders01/hatut/internal/state"
)

//go:embed fixture.toml
var fixtureTOML []byte

type fixtureFile struct {
	Stories []fixtureStory `toml:"story"`
}

type fixtureStory struct {
	ID     string `toml:"id"`
	Title  string `toml:"title"`
	Author string `toml:"author"`
}

// Fixture serves the same embedded collection for every filter.
type Fixture struct {
	entries []state.Entry
}

func NewFixture() (*Fixture, error) {
	var file fixtureFile
	if err := toml.Unmarshal(fixtureTOML, &file); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}

	entries := make([]state.Entry, 0, len(file.Stories))
	for _, s := range file.Stories {
		entries = append(entries, state.Entry{ID: s.ID, Title: s.Title, Author: s.Author})
	}
	return &Fixture{entries: entries}, nil
}

func (f *Fixture) Stories(ctx context.Context, _ string) ([]state.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]state.Entry(nil), f.entries...), nil
}
