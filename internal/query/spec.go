// Package query turns loosely-typed request parameters into an immutable
// filter/sort/pagination spec. Parsing is table-driven: each catalog entity
// declares a rule per filterable field, and malformed values degrade
// per-field (skip, never abort) so a single bad token cannot fail a search.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pawmart/internal/validate"
)

type Kind int

const (
	// Exact matches the stored value as given.
	Exact Kind = iota
	// Numeric matches a numeric column; malformed input skips the filter.
	Numeric
	// Contains is a case-insensitive substring match.
	Contains
	// In is set membership over a comma-separated list, values as given.
	In
	// InFold is set membership with both sides lower-cased.
	InFold
	// AnyContains splits a comma-separated list and matches if any token
	// is a case-insensitive substring of the stored value.
	AnyContains
)

// Rule binds a request parameter to a storage column and a match kind.
type Rule struct {
	Param string
	Field string
	Kind  Kind
}

type Filter struct {
	Field  string
	Kind   Kind
	Values []string
	Number float64 // set when Kind == Numeric
}

// Range is a numeric bound on a single column; either side may be nil.
type Range struct {
	Field    string
	Min, Max *float64
}

type Sort struct {
	Field string
	Desc  bool
}

// Spec is the normalized form of one search request. Built once per
// request, never persisted.
type Spec struct {
	Filters      []Filter
	Ranges       []Range
	CreatedAfter string // RFC3339 lower bound on created_at, empty when unset
	ExcludeID    string
	Sort         Sort
	Page         int
	Limit        int
}

func (s Spec) Offset() int { return (s.Page - 1) * s.Limit }

// Options carries the per-entity knobs that are not per-field rules.
type Options struct {
	// SortColumns whitelists sortField values onto storage columns.
	SortColumns map[string]string
	// DefaultSortColumn is used when sortField is absent or unknown.
	DefaultSortColumn string
	// FreshParam names the recency flag ("isNewlyAdded" for pets,
	// "isNewlyReleased" for products).
	FreshParam string
	// Now anchors the recency window; zero means time.Now().
	Now time.Time
}

const (
	DefaultLimit = 9
	// FreshWindow is the recency window for the newly-added flag.
	FreshWindow = 7 * 24 * time.Hour
)

// Getter reads one request parameter; handlers wrap fiber's Ctx.Query
// in a closure to satisfy it.
type Getter func(key string) string

// Parse evaluates the rule table against the request parameters and
// returns the spec plus warnings for values that were silently skipped.
func Parse(get Getter, rules []Rule, opt Options) (Spec, []string) {
	var warns []string
	s := Spec{Page: 1, Limit: DefaultLimit}

	for _, r := range rules {
		raw := strings.TrimSpace(get(r.Param))
		if raw == "" {
			continue
		}
		switch r.Kind {
		case Exact, Contains:
			s.Filters = append(s.Filters, Filter{Field: r.Field, Kind: r.Kind, Values: []string{raw}})
		case Numeric:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				warns = append(warns, fmt.Sprintf("%s: not numeric, skipped", r.Param))
				continue
			}
			s.Filters = append(s.Filters, Filter{Field: r.Field, Kind: Numeric, Number: n})
		case In, InFold, AnyContains:
			vals := splitList(raw)
			if len(vals) == 0 {
				continue
			}
			s.Filters = append(s.Filters, Filter{Field: r.Field, Kind: r.Kind, Values: vals})
		}
	}

	// Price bounds: a malformed side is treated as absent, never rejected.
	min, minOK := parseBound(get("price_min"))
	max, maxOK := parseBound(get("price_max"))
	if !minOK {
		warns = append(warns, "price_min: not numeric, skipped")
	}
	if !maxOK {
		warns = append(warns, "price_max: not numeric, skipped")
	}
	if min != nil || max != nil {
		s.Ranges = append(s.Ranges, Range{Field: "price", Min: min, Max: max})
	}

	fresh := opt.FreshParam
	if fresh == "" {
		fresh = "isNewlyAdded"
	}
	if get(fresh) == "true" {
		now := opt.Now
		if now.IsZero() {
			now = time.Now()
		}
		s.CreatedAfter = now.Add(-FreshWindow).UTC().Format(time.RFC3339)
	}

	if raw := strings.TrimSpace(get("excludeId")); raw != "" {
		if id, ok := validate.ID(raw); ok {
			s.ExcludeID = id
		} else {
			warns = append(warns, "excludeId: invalid identifier, skipped")
		}
	}

	if n, err := strconv.Atoi(get("page")); err == nil && n >= 1 {
		s.Page = n
	}
	if n, err := strconv.Atoi(get("limit")); err == nil && n > 0 {
		s.Limit = n
	}

	s.Sort.Field = opt.DefaultSortColumn
	if col, ok := opt.SortColumns[get("sortField")]; ok {
		s.Sort.Field = col
	}
	s.Sort.Desc = get("sortOrder") != "asc"

	return s, warns
}

// splitList trims a comma-separated list, dropping empty tokens.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseBound returns (nil, true) for absent input and (nil, false) for a
// malformed value, which callers drop.
func parseBound(raw string) (*float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}
