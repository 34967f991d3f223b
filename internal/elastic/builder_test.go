package elastic

import (
	"encoding/json"
	"reflect"
	"testing"
)

func payloadJSON(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(data)
}

func assertPayload(t *testing.T, got map[string]interface{}, want string) {
	t.Helper()

	var wantValue, gotValue interface{}
	if err := json.Unmarshal([]byte(want), &wantValue); err != nil {
		t.Fatalf("invalid expected JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(payloadJSON(t, got)), &gotValue); err != nil {
		t.Fatalf("invalid built JSON: %v", err)
	}
	if !reflect.DeepEqual(gotValue, wantValue) {
		t.Errorf("payload mismatch\ngot:  %s\nwant: %s", payloadJSON(t, got), want)
	}
}

func TestBuilderMatchQuery(t *testing.T) {
	payload := NewBuilder().
		Pagination(0, 10).
		Match("destinationName", "Bali").
		Build()

	assertPayload(t, payload, `{
		"from": 0,
		"size": 10,
		"query": {
			"match": {
				"destinationName": {"query": "Bali", "fuzziness": "AUTO"}
			}
		}
	}`)
}

func TestBuilderMultiMatchQuery(t *testing.T) {
	payload := NewBuilder().
		Pagination(2, 5).
		MultiMatch([]string{"destinationName.ngram", "name.ngram"}, "ubud villa").
		Build()

	assertPayload(t, payload, `{
		"from": 10,
		"size": 5,
		"query": {
			"multi_match": {
				"query": "ubud villa",
				"fields": ["destinationName.ngram", "name.ngram"],
				"fuzziness": "AUTO"
			}
		}
	}`)
}

func TestBuilderCompletionSuggester(t *testing.T) {
	payload := NewBuilder().
		Size(0).
		Completion("accommodation_suggest", "gran", "name_suggest", 3).
		Build()

	assertPayload(t, payload, `{
		"from": 0,
		"size": 0,
		"suggest": {
			"accommodation_suggest": {
				"prefix": "gran",
				"completion": {
					"field": "name_suggest",
					"size": 3,
					"skip_duplicates": true,
					"fuzzy": {"fuzziness": 2}
				}
			}
		}
	}`)
}

func TestBuilderDeterministic(t *testing.T) {
	build := func() string {
		return payloadJSON(t, NewBuilder().
			Pagination(1, 20).
			MultiMatch([]string{"a", "b"}, "q").
			Sort("name", "asc").
			SourceFields("id", "name").
			Build())
	}

	first := build()
	for i := 0; i < 10; i++ {
		if got := build(); got != first {
			t.Fatalf("payload not deterministic:\nfirst: %s\ngot:   %s", first, got)
		}
	}
}

func TestBuilderPaginationOffsets(t *testing.T) {
	tests := []struct {
		page, limit int
		wantFrom    int
	}{
		{0, 10, 0},
		{1, 10, 10},
		{3, 7, 21},
	}

	for _, tt := range tests {
		payload := NewBuilder().Pagination(tt.page, tt.limit).Build()
		if got := payload["from"].(int); got != tt.wantFrom {
			t.Errorf("page=%d limit=%d: from = %d, want %d", tt.page, tt.limit, got, tt.wantFrom)
		}
		if got := payload["size"].(int); got != tt.limit {
			t.Errorf("page=%d limit=%d: size = %d, want %d", tt.page, tt.limit, got, tt.limit)
		}
	}
}
