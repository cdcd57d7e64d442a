/*
Package memory provides in-process implementations of the persistence
ports. They back the memory database mode and the handler tests; query
plans are evaluated against plain field maps with the same semantics the
document store applies.
*/
package memory

import (
	"regexp"
	"sort"
	"time"

	"weblarek/domain/listing"
)

// fields is a flattened view of one document for clause evaluation.
// Multi-valued entries (embedded arrays) are represented as []string.
type fields map[string]any

func matches(clauses []listing.Clause, doc fields) bool {
	for _, clause := range clauses {
		if !matchClause(clause, doc) {
			return false
		}
	}
	return true
}

func matchClause(clause listing.Clause, doc fields) bool {
	if len(clause.Or) > 0 {
		for _, alt := range clause.Or {
			if matchClause(alt, doc) {
				return true
			}
		}
		return false
	}

	value, ok := doc[clause.Field]
	if !ok {
		return false
	}

	switch clause.Op {
	case listing.OpEq:
		return value == clause.Value
	case listing.OpContains:
		pattern, _ := clause.Value.(string)
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false
		}
		switch v := value.(type) {
		case string:
			return re.MatchString(v)
		case []string:
			for _, s := range v {
				if re.MatchString(s) {
					return true
				}
			}
		}
		return false
	case listing.OpGte:
		return compare(value, clause.Value) >= 0
	case listing.OpLte:
		return compare(value, clause.Value) <= 0
	}
	return false
}

func compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case int64:
		bv, ok := toFloat(b)
		if !ok {
			return 0
		}
		return compare(float64(av), bv)
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0
		}
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// applySpec filters, sorts and windows the documents, returning the
// selected indexes and the total match count.
func applySpec(spec *listing.Spec, docs []fields) ([]int, int64) {
	selected := make([]int, 0, len(docs))
	for i, doc := range docs {
		if matches(spec.Clauses, doc) {
			selected = append(selected, i)
		}
	}
	total := int64(len(selected))

	// Stable sort keeps insertion order for ties, matching store behavior.
	sort.SliceStable(selected, func(i, j int) bool {
		a := docs[selected[i]][spec.SortField]
		b := docs[selected[j]][spec.SortField]
		if spec.SortDesc {
			return compare(a, b) > 0
		}
		return compare(a, b) < 0
	})

	start := int(spec.Skip())
	if start > len(selected) {
		return nil, total
	}
	end := start + spec.PageSize
	if end > len(selected) {
		end = len(selected)
	}
	return selected[start:end], total
}
