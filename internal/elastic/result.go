package elastic

import (
	"encoding/json"
	"strings"
)

// Result is the parsed search response envelope. Missing hits, _source or
// suggest options degrade to empty values, never to an error.
type Result struct {
	HitsEnvelope *hitsEnvelope             `json:"hits"`
	Suggest      map[string][]suggestEntry `json:"suggest"`
}

type hitsEnvelope struct {
	Total json.RawMessage `json:"total"`
	Hits  []hit           `json:"hits"`
}

type hit struct {
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

type suggestEntry struct {
	Options []suggestOption `json:"options"`
}

type suggestOption struct {
	Text string `json:"text"`
}

// Total returns the index-reported total hit count, tolerating both the
// numeric form and the object-wrapped {"value": n} form.
func (r *Result) Total() int {
	if r.HitsEnvelope == nil || len(r.HitsEnvelope.Total) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(r.HitsEnvelope.Total, &n); err == nil {
		return n
	}

	var wrapped struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(r.HitsEnvelope.Total, &wrapped); err == nil {
		return wrapped.Value
	}

	return 0
}

// Sources returns the raw _source documents in relevance order, skipping
// hits with no _source.
func (r *Result) Sources() []json.RawMessage {
	if r.HitsEnvelope == nil {
		return nil
	}
	sources := make([]json.RawMessage, 0, len(r.HitsEnvelope.Hits))
	for _, h := range r.HitsEnvelope.Hits {
		if len(h.Source) == 0 {
			continue
		}
		sources = append(sources, h.Source)
	}
	return sources
}

// Suggestions flattens the named completion suggester's options into an
// ordered list, de-duplicated, skipping blank entries.
func (r *Result) Suggestions(name string) []string {
	entries, ok := r.Suggest[name]
	if !ok || len(entries) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, len(entries[0].Options))
	for _, opt := range entries[0].Options {
		text := opt.Text
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}
