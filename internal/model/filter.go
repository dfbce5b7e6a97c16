package model

import (
	"maps"
	"net/url"
	"strings"
	"time"
)

// Filter is a list filter: query key to value. Blank values mean "no criterion".
type Filter map[string]string

func (f Filter) Clone() Filter {
	if f == nil {
		return Filter{}
	}
	return maps.Clone(f)
}

// Merge returns a copy of f with patch applied. Keys in patch set to "" clear the criterion.
func (f Filter) Merge(patch Filter) Filter {
	out := f.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Get returns the trimmed value of key.
func (f Filter) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Values builds a query from the non-blank fields only.
func (f Filter) Values() url.Values {
	q := url.Values{}
	for k, v := range f {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// DateRange sets both ends of a date range, or clears them when either is zero.
func (f Filter) DateRange(fromKey, toKey string, from, to time.Time) Filter {
	if from.IsZero() || to.IsZero() {
		return f.Merge(Filter{fromKey: "", toKey: ""})
	}
	return f.Merge(Filter{
		fromKey: from.UTC().Format(time.RFC3339),
		toKey:   to.UTC().Format(time.RFC3339),
	})
}
