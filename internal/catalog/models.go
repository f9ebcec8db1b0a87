package catalog

import "github.com/pders01/hatut/internal/state"

// record is the stored form of one story in a collection.
type record struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

func toRecords(entries []state.Entry) []record {
	out := make([]record, len(entries))
	for i, e := range entries {
		out[i] = record{ID: e.ID, Title: e.Title, Author: e.Author}
	}
	return out
}

func toEntries(records []record) []state.Entry {
	out := make([]state.Entry, len(records))
	for i, r := range records {
		out[i] = state.Entry{ID: r.ID, Title: r.Title, Author: r.Author}
	}
	return out
}
