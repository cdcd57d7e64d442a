/*
Package listing builds bounded, injection-safe query plans from untrusted
request parameters.

A Spec is constructed once per request via Build and is immutable
afterwards. Repositories translate its clauses into the store's query
language; raw user input never reaches that language directly: substring
searches are escaped, sort fields come from an allow-list, and parameter
keys that collide with store operator syntax are rejected outright.
*/
package listing

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weblarek/pkg/errors"
)

const (
	// DefaultPageSize is used when the caller supplies no usable page size.
	DefaultPageSize = 10
	// MaxPageSize is the hard ceiling; values above it are rejected, not clamped.
	MaxPageSize = 10
	// DefaultSortField orders by creation time unless overridden.
	DefaultSortField = "createdAt"
)

// Viewer is the authorization context a spec is built under.
type Viewer struct {
	SubjectID string
	Admin     bool
}

// Op identifies a predicate operator.
type Op string

const (
	OpEq       Op = "eq"
	OpContains Op = "contains" // case-insensitive substring, value pre-escaped
	OpGte      Op = "gte"
	OpLte      Op = "lte"
)

// Clause is one predicate of a query plan. When Or is non-empty the
// clause is a disjunction and Field/Op/Value are unset.
type Clause struct {
	Field string
	Op    Op
	Value any
	Or    []Clause
}

// Eq matches documents whose field equals value.
func Eq(field string, value any) Clause {
	return Clause{Field: field, Op: OpEq, Value: value}
}

// Contains matches documents whose field contains the (already escaped)
// pattern, case-insensitively.
func Contains(field, escapedPattern string) Clause {
	return Clause{Field: field, Op: OpContains, Value: escapedPattern}
}

// Gte matches documents whose field is >= value.
func Gte(field string, value any) Clause {
	return Clause{Field: field, Op: OpGte, Value: value}
}

// Lte matches documents whose field is <= value.
func Lte(field string, value any) Clause {
	return Clause{Field: field, Op: OpLte, Value: value}
}

// Or combines clauses into a disjunction.
func Or(clauses ...Clause) Clause {
	return Clause{Or: clauses}
}

// Spec is an executable query plan: filter clauses plus sort and window.
type Spec struct {
	Page      int
	PageSize  int
	SortField string
	SortDesc  bool
	Clauses   []Clause
}

// Skip is the number of documents to skip for the requested page.
func (s *Spec) Skip() int64 {
	return int64(s.Page-1) * int64(s.PageSize)
}

// Limit is the window size.
func (s *Spec) Limit() int64 {
	return int64(s.PageSize)
}

// EnumFilter binds a request parameter to an exact-match field with an
// allow-listed value set.
type EnumFilter struct {
	Param   string
	Field   string
	Allowed []string
}

// RangeFilter binds a pair of request parameters to a field range.
type RangeFilter struct {
	Field     string
	FromParam string
	ToParam   string
	Date      bool // parse values as dates instead of numbers
}

// Options are the per-resource allow-lists a spec is built against.
type Options struct {
	SortFields         []string
	DefaultSortField   string // falls back to DefaultSortField when empty
	DefaultSortAsc     bool   // default order is descending
	SearchFields       []string
	NumericSearchField string // exact-match field for numeric searches
	OwnerField         string // non-admin viewers are always narrowed to this field
	OwnerParam         string // admin-only explicit owner scoping
	EnumFilters        []EnumFilter
	RangeFilters       []RangeFilter
	MaxPageSize        int // falls back to MaxPageSize when zero
	DefaultPageSize    int // falls back to DefaultPageSize when zero
}

// Build parses raw query parameters into a Spec under the given viewer.
//
// Absent or malformed page/pageSize values are defaulted, never rejected;
// a pageSize above the ceiling is rejected with a validation error. Sort
// fields outside the allow-list silently fall back to the default. A
// non-admin viewer is always narrowed to its own subject regardless of
// any owner parameter in the request.
func Build(params url.Values, viewer Viewer, opts Options) (*Spec, error) {
	if err := checkReservedKeys(params); err != nil {
		return nil, err
	}

	maxPageSize := opts.MaxPageSize
	if maxPageSize == 0 {
		maxPageSize = MaxPageSize
	}
	defaultPageSize := opts.DefaultPageSize
	if defaultPageSize == 0 {
		defaultPageSize = DefaultPageSize
	}

	spec := &Spec{
		Page:     parsePage(params.Get("page")),
		PageSize: defaultPageSize,
	}

	pageSize, err := parsePageSize(firstOf(params, "pageSize", "limit"), defaultPageSize, maxPageSize)
	if err != nil {
		return nil, err
	}
	spec.PageSize = pageSize

	spec.SortField, spec.SortDesc = parseSort(params.Get("sortField"), params.Get("sortOrder"), opts)

	for _, ef := range opts.EnumFilters {
		raw := params.Get(ef.Param)
		if raw == "" {
			continue
		}
		if !containsString(ef.Allowed, raw) {
			return nil, errors.Validation(fmt.Sprintf("invalid %s value", ef.Param))
		}
		spec.Clauses = append(spec.Clauses, Eq(ef.Field, raw))
	}

	for _, rf := range opts.RangeFilters {
		clauses, err := parseRange(params, rf)
		if err != nil {
			return nil, err
		}
		spec.Clauses = append(spec.Clauses, clauses...)
	}

	if search := strings.TrimSpace(params.Get("search")); search != "" {
		if clause, ok := buildSearch(search, opts); ok {
			spec.Clauses = append(spec.Clauses, clause)
		}
	}

	if opts.OwnerField != "" {
		if viewer.Admin {
			if owner := params.Get(opts.OwnerParam); opts.OwnerParam != "" && owner != "" {
				spec.Clauses = append(spec.Clauses, Eq(opts.OwnerField, owner))
			}
		} else {
			// Caller-supplied scoping must never widen access.
			spec.Clauses = append(spec.Clauses, Eq(opts.OwnerField, viewer.SubjectID))
		}
	}

	return spec, nil
}

// checkReservedKeys rejects parameter keys that collide with store
// operator syntax, a loosely typed query-string parser would otherwise
// hand them straight to the filter.
func checkReservedKeys(params url.Values) error {
	for key := range params {
		if strings.HasPrefix(key, "$") || strings.Contains(key, ".") ||
			strings.Contains(key, "__proto__") || strings.Contains(key, "constructor") {
			return errors.Validation("invalid query parameters")
		}
	}
	return nil
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePageSize(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		return def, nil
	}
	if size > max {
		return 0, errors.Validation(fmt.Sprintf("pageSize must not exceed %d", max))
	}
	return size, nil
}

func parseSort(field, order string, opts Options) (string, bool) {
	sortField := opts.DefaultSortField
	if sortField == "" {
		sortField = DefaultSortField
	}
	if field != "" && containsString(opts.SortFields, field) {
		sortField = field
	}

	desc := !opts.DefaultSortAsc
	switch order {
	case "asc", "ascending":
		desc = false
	case "desc", "descending":
		desc = true
	}
	return sortField, desc
}

func parseRange(params url.Values, rf RangeFilter) ([]Clause, error) {
	var clauses []Clause
	bounds := []struct {
		param string
		op    func(string, any) Clause
	}{
		{rf.FromParam, Gte},
		{rf.ToParam, Lte},
	}
	for _, b := range bounds {
		raw := params.Get(b.param)
		if raw == "" {
			continue
		}
		value, err := parseRangeValue(raw, rf.Date)
		if err != nil {
			return nil, errors.Validation(fmt.Sprintf("invalid %s value", b.param))
		}
		clauses = append(clauses, b.op(rf.Field, value))
	}
	return clauses, nil
}

func parseRangeValue(raw string, date bool) (any, error) {
	if date {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	}
	return strconv.ParseFloat(raw, 64)
}

// buildSearch turns a free-text search into an OR across the searchable
// fields, plus an exact numeric-identifier match when the input parses
// as a number.
func buildSearch(search string, opts Options) (Clause, bool) {
	clean := StripTags(search)
	if clean == "" {
		return Clause{}, false
	}
	escaped := EscapePattern(clean)

	var alternatives []Clause
	for _, field := range opts.SearchFields {
		alternatives = append(alternatives, Contains(field, escaped))
	}
	if opts.NumericSearchField != "" {
		if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
			alternatives = append(alternatives, Eq(opts.NumericSearchField, n))
		}
	}

	switch len(alternatives) {
	case 0:
		return Clause{}, false
	case 1:
		return alternatives[0], true
	default:
		return Or(alternatives...), true
	}
}

// TotalPages computes ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func firstOf(params url.Values, keys ...string) string {
	for _, key := range keys {
		if v := params.Get(key); v != "" {
			return v
		}
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
