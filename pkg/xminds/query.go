package xminds

import (
	"fmt"
	"net/url"
	"strings"
)

// Query is an ordered list of query string parameters. Unlike url.Values it
// keeps insertion order, so the encoded string is stable.
type Query struct {
	keys   []string
	values []string
}

// Add appends a parameter. Values are formatted with fmt.Sprint.
func (q *Query) Add(key string, value any) {
	q.keys = append(q.keys, key)
	q.values = append(q.values, fmt.Sprint(value))
}

// Len returns the number of parameters.
func (q *Query) Len() int { return len(q.keys) }

// Encode returns "?k1=v1&k2=v2" with every key and value percent-encoded on
// its own, or "" when there are no parameters.
func (q *Query) Encode() string {
	if len(q.keys) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	for i, key := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeComponent(key))
		b.WriteByte('=')
		b.WriteString(escapeComponent(q.values[i]))
	}
	return b.String()
}

// escapeComponent percent-encodes s for use as a single query key or value.
// Spaces become %20 rather than "+". The characters !'()* are escaped too,
// which decodes to the same value on the server.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FormatFilter renders a filter as "name:op" or "name:op:value". Only a nil
// Value is left out; zero values such as 0, false or "" are sent.
func FormatFilter(f Filter) string {
	if f.Value == nil {
		return f.PropertyName + ":" + f.Op
	}
	return f.PropertyName + ":" + f.Op + ":" + fmt.Sprint(f.Value)
}

// FormatFilters renders each filter with FormatFilter.
func FormatFilters(filters []Filter) []string {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		out = append(out, FormatFilter(f))
	}
	return out
}

// Chunk splits s into consecutive slices of at most size elements. It returns
// nil for an empty slice or a non-positive size.
func Chunk[T any](s []T, size int) [][]T {
	if len(s) == 0 || size <= 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(s)+size-1)/size)
	for start := 0; start < len(s); start += size {
		end := min(start+size, len(s))
		chunks = append(chunks, s[start:end])
	}
	return chunks
}

// query encodes the options in a fixed order. Each filter is sent as its own
// filters= pair instead of one comma-joined value, so values may contain
// commas.
func (o RecommendationOptions) query() *Query {
	q := &Query{}
	if o.Amt > 0 {
		q.Add("amt", o.Amt)
	}
	if o.Cursor != "" {
		q.Add("cursor", o.Cursor)
	}
	for _, f := range FormatFilters(o.Filters) {
		q.Add("filters", f)
	}
	if o.ExcludeRatedItems {
		q.Add("exclude_rated_items", true)
	}
	return q
}

func (o PrecomputedOptions) query() *Query {
	q := &Query{}
	if o.Amt > 0 {
		q.Add("amt", o.Amt)
	}
	return q
}
