package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/hatut/internal/state"
)

// Parser decodes retrieval bodies. JSON objects map story id to
// {title, author}; RSS and Atom documents are accepted as well.
type Parser struct {
	feeds *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{feeds: gofeed.NewParser()}
}

func (p *Parser) Parse(r io.Reader, contentType string) ([]state.Entry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if isFeed(contentType, body) {
		return p.parseFeed(body)
	}
	return parseJSON(body)
}

func isFeed(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "xml") || strings.Contains(ct, "rss") || strings.Contains(ct, "atom") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}

// parseJSON keeps the document order of the object's members. Members
// whose value is not an object are skipped and missing or non-string
// fields become empty strings.
func parseJSON(body []byte) ([]state.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	entries := []state.Entry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		id, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: story %q: %v", ErrMalformed, id, err)
		}

		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			continue
		}
		entries = append(entries, state.Entry{
			ID:     id,
			Title:  stringField(fields, "title"),
			Author: stringField(fields, "author"),
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return entries, nil
}

func stringField(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

func (p *Parser) parseFeed(body []byte) ([]state.Entry, error) {
	feed, err := p.feeds.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	entries := make([]state.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		id := firstNonEmpty(item.GUID, item.Link, item.Title)
		if id == "" {
			continue
		}
		entries = append(entries, state.Entry{
			ID:     id,
			Title:  item.Title,
			Author: itemAuthor(item, feed),
		})
	}
	return entries, nil
}

func itemAuthor(item *gofeed.Item, feed *gofeed.Feed) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	if feed.Author != nil {
		return feed.Author.Name
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
