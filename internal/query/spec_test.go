package query_test

import (
	"strings"
	"testing"
	"time"

	"pawmart/internal/query"
)

func getter(params map[string]string) query.Getter {
	return func(key string) string { return params[key] }
}

var rules = []query.Rule{
	{Param: "category", Field: "category", Kind: query.InFold},
	{Param: "type", Field: "type", Kind: query.AnyContains},
	{Param: "gender", Field: "gender", Kind: query.In},
	{Param: "age", Field: "age", Kind: query.Exact},
	{Param: "weight", Field: "weight", Kind: query.Numeric},
	{Param: "name_search", Field: "name", Kind: query.Contains},
}

func parse(t *testing.T, params map[string]string) (query.Spec, []string) {
	t.Helper()
	return query.Parse(getter(params), rules, query.Options{
		SortColumns:       map[string]string{"createdAt": "created_at", "price": "price"},
		DefaultSortColumn: "created_at",
	})
}

func TestParseDefaults(t *testing.T) {
	s, warns := parse(t, map[string]string{})
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	if s.Page != 1 || s.Limit != 9 {
		t.Fatalf("want page=1 limit=9, got %d/%d", s.Page, s.Limit)
	}
	if s.Sort.Field != "created_at" || !s.Sort.Desc {
		t.Fatalf("want default created_at desc, got %+v", s.Sort)
	}
	if where, args := s.Clause(); where != "" || len(args) != 0 {
		t.Fatalf("empty spec should render no clause, got %q %v", where, args)
	}
}

func TestParseListFilters(t *testing.T) {
	s, _ := parse(t, map[string]string{
		"category": "Dog, cat",
		"type":     "terrier,spaniel",
		"gender":   "Male,Female",
	})
	where, args := s.Clause()
	if !strings.Contains(where, "LOWER(category) IN (?,?)") {
		t.Fatalf("category clause missing: %q", where)
	}
	if !strings.Contains(where, "(LOWER(type) LIKE ? OR LOWER(type) LIKE ?)") {
		t.Fatalf("type clause missing: %q", where)
	}
	if !strings.Contains(where, "gender IN (?,?)") {
		t.Fatalf("gender clause missing: %q", where)
	}
	// category values lower-cased, gender values as given
	want := []any{"dog", "cat", "%terrier%", "%spaniel%", "Male", "Female"}
	if len(args) != len(want) {
		t.Fatalf("want %d args, got %v", len(want), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("arg %d: want %v, got %v", i, want[i], args[i])
		}
	}
}

func TestParsePriceBounds(t *testing.T) {
	s, warns := parse(t, map[string]string{"price_min": "100", "price_max": "200"})
	if len(warns) != 0 {
		t.Fatalf("unexpected warnings: %v", warns)
	}
	where, args := s.Clause()
	if !strings.Contains(where, "price >= ?") || !strings.Contains(where, "price <= ?") {
		t.Fatalf("bad range clause: %q", where)
	}
	if args[0] != 100.0 || args[1] != 200.0 {
		t.Fatalf("bad range args: %v", args)
	}

	// malformed bound is dropped, the other survives
	s, warns = parse(t, map[string]string{"price_min": "abc", "price_max": "50"})
	if len(warns) != 1 {
		t.Fatalf("want one warning, got %v", warns)
	}
	where, args = s.Clause()
	if strings.Contains(where, ">=") || !strings.Contains(where, "price <= ?") {
		t.Fatalf("want only upper bound: %q", where)
	}
	if args[0] != 50.0 {
		t.Fatalf("bad arg: %v", args)
	}
}

func TestParseNumericFilterSkipsMalformed(t *testing.T) {
	s, warns := parse(t, map[string]string{"weight": "heavy"})
	if len(warns) != 1 {
		t.Fatalf("want warning for weight, got %v", warns)
	}
	if len(s.Filters) != 0 {
		t.Fatalf("malformed weight must be skipped: %+v", s.Filters)
	}

	s, _ = parse(t, map[string]string{"weight": "4.2"})
	_, args := s.Clause()
	if len(args) != 1 || args[0] != 4.2 {
		t.Fatalf("want numeric arg 4.2, got %v", args)
	}
}

func TestParseExcludeID(t *testing.T) {
	s, warns := parse(t, map[string]string{"excludeId": "pet-buddy"})
	if len(warns) != 0 || s.ExcludeID != "pet-buddy" {
		t.Fatalf("valid id should pass: %+v %v", s, warns)
	}

	s, warns = parse(t, map[string]string{"excludeId": "not an id!"})
	if s.ExcludeID != "" {
		t.Fatal("invalid id must be skipped")
	}
	if len(warns) != 1 {
		t.Fatalf("want warning, got %v", warns)
	}
	if where, _ := s.Clause(); where != "" {
		t.Fatalf("skipped excludeId must not filter: %q", where)
	}
}

func TestParseFreshWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, _ := query.Parse(getter(map[string]string{"isNewlyAdded": "true"}), rules, query.Options{
		DefaultSortColumn: "created_at",
		Now:               now,
	})
	want := "2026-03-03T12:00:00Z"
	if s.CreatedAfter != want {
		t.Fatalf("want cutoff %s, got %s", want, s.CreatedAfter)
	}
	where, args := s.Clause()
	if !strings.Contains(where, "created_at >= ?") || args[0] != want {
		t.Fatalf("bad fresh clause: %q %v", where, args)
	}

	// anything but the literal "true" leaves the filter off
	s, _ = query.Parse(getter(map[string]string{"isNewlyAdded": "1"}), rules, query.Options{
		DefaultSortColumn: "created_at", Now: now,
	})
	if s.CreatedAfter != "" {
		t.Fatal("only isNewlyAdded=true should enable the filter")
	}
}

func TestParseSort(t *testing.T) {
	s, _ := parse(t, map[string]string{"sortField": "price", "sortOrder": "asc"})
	if s.Sort.Field != "price" || s.Sort.Desc {
		t.Fatalf("want price asc, got %+v", s.Sort)
	}
	if s.OrderClause() != " ORDER BY price ASC" {
		t.Fatalf("bad order clause: %q", s.OrderClause())
	}

	// unknown sort field falls back to the default column
	s, _ = parse(t, map[string]string{"sortField": "evil); DROP TABLE pets;--"})
	if s.Sort.Field != "created_at" {
		t.Fatalf("unknown sort field must fall back: %+v", s.Sort)
	}

	// any non-"asc" order is descending
	s, _ = parse(t, map[string]string{"sortOrder": "ascending"})
	if !s.Sort.Desc {
		t.Fatal("non-asc order must sort descending")
	}
}

func TestParsePagination(t *testing.T) {
	s, _ := parse(t, map[string]string{"page": "3", "limit": "12"})
	if s.Page != 3 || s.Limit != 12 || s.Offset() != 24 {
		t.Fatalf("bad pagination: %+v offset=%d", s, s.Offset())
	}

	s, _ = parse(t, map[string]string{"page": "0", "limit": "-5"})
	if s.Page != 1 || s.Limit != 9 {
		t.Fatalf("invalid page/limit must fall back to defaults: %+v", s)
	}
}
