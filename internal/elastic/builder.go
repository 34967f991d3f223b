// Package elastic builds query payloads for the external search index and
// parses its responses into tolerant, typed results.
package elastic

const (
	// FuzzinessAuto is the match-query tolerance for approximate text search.
	FuzzinessAuto = "AUTO"
	// CompletionFuzziness is the edit distance for prefix-completion suggesters.
	CompletionFuzziness = 2
)

// Builder constructs an index query payload from declarative inputs. It is
// pure and stateless between Build calls; identical inputs produce
// byte-identical payloads once marshaled (encoding/json sorts map keys).
type Builder struct {
	from    int
	size    int
	query   map[string]interface{}
	sort    []interface{}
	suggest map[string]interface{}
	source  interface{}
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Pagination sets from = page*limit and size = limit.
func (b *Builder) Pagination(page, limit int) *Builder {
	b.from = page * limit
	b.size = limit
	return b
}

// Size overrides the result window size without paging.
func (b *Builder) Size(size int) *Builder {
	b.size = size
	return b
}

// Match adds a single-field match query with AUTO fuzziness.
func (b *Builder) Match(field, query string) *Builder {
	b.query = map[string]interface{}{
		"match": map[string]interface{}{
			field: map[string]interface{}{
				"query":     query,
				"fuzziness": FuzzinessAuto,
			},
		},
	}
	return b
}

// MultiMatch adds a multi-field match query with AUTO fuzziness.
func (b *Builder) MultiMatch(fields []string, query string) *Builder {
	b.query = map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":     query,
			"fields":    fields,
			"fuzziness": FuzzinessAuto,
		},
	}
	return b
}

// Completion adds a named prefix-completion suggester on field, returning at
// most size options, skipping duplicate texts.
func (b *Builder) Completion(name, prefix, field string, size int) *Builder {
	if b.suggest == nil {
		b.suggest = map[string]interface{}{}
	}
	b.suggest[name] = map[string]interface{}{
		"prefix": prefix,
		"completion": map[string]interface{}{
			"field":           field,
			"size":            size,
			"skip_duplicates": true,
			"fuzzy": map[string]interface{}{
				"fuzziness": CompletionFuzziness,
			},
		},
	}
	return b
}

// Sort appends a sort clause.
func (b *Builder) Sort(field, order string) *Builder {
	b.sort = append(b.sort, map[string]interface{}{
		field: map[string]interface{}{"order": order},
	})
	return b
}

// SourceFields restricts _source to the given fields.
func (b *Builder) SourceFields(fields ...string) *Builder {
	b.source = fields
	return b
}

// Build assembles the payload.
func (b *Builder) Build() map[string]interface{} {
	payload := map[string]interface{}{
		"from": b.from,
		"size": b.size,
	}
	if b.query != nil {
		payload["query"] = b.query
	}
	if b.sort != nil {
		payload["sort"] = b.sort
	}
	if b.suggest != nil {
		payload["suggest"] = b.suggest
	}
	if b.source != nil {
		payload["_source"] = b.source
	}
	return payload
}
