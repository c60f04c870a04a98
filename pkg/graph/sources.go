package graph

import (
	"reflect"
	"slices"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
)

// sourceList is an insertion-ordered set of provenance references.
type sourceList struct {
	refs []common.SourceRef
	seen map[common.SourceRef]struct{}
}

func (s *sourceList) add(refs ...common.SourceRef) {
	if s.seen == nil {
		s.seen = make(map[common.SourceRef]struct{}, len(refs))
	}
	for _, ref := range refs {
		if _, ok := s.seen[ref]; ok {
			continue
		}
		s.seen[ref] = struct{}{}
		s.refs = append(s.refs, ref)
	}
}

// list returns a copy of the references in first-seen order.
func (s *sourceList) list() []common.SourceRef {
	return slices.Clone(s.refs)
}

// mergeAttributes copies every key of src into dst, overwriting keys that
// already exist. Values are deep-copied so the caller's maps stay untouched.
func mergeAttributes(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		mergeAttributes(out, t)
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return slices.Clone(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	default:
		return v
	}
}

// stringList converts a tags-like attribute value to []string. Values that
// are not strings are skipped.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

// unionStrings appends the values of add that are not yet in base.
func unionStrings(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]struct{}, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
