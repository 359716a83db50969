package engine

import "sort"

// Record is one row of a normalized upstream response.
type Record map[string]interface{}

// RecordSet is an ordered sequence of rows, order preserved from the source
// response. Elements are usually Records; array elements that aren't JSON
// objects are carried unchanged since there is no schema enforcement.
type RecordSet []interface{}

// wrapperKeys are scanned in this fixed priority order when the top level
// value is an object wrapping the actual rows.
var wrapperKeys = []string{"results", "data", "rows"}

// Normalize converts a decoded JSON value into a RecordSet. ok is false when
// no tabular shape could be determined; the caller must then treat the value
// as a raw pass-through, which is not an error but also not joinable.
func Normalize(value interface{}) (RecordSet, bool) {
	switch v := value.(type) {
	case []interface{}:
		return toRecordSet(v), true
	case map[string]interface{}:
		for _, key := range wrapperKeys {
			if rows, ok := v[key].([]interface{}); ok {
				return toRecordSet(rows), true
			}
		}
		// the dict-of-records convention: {"1": {...}, "2": {...}}
		for _, entry := range v {
			if _, ok := entry.(map[string]interface{}); !ok {
				return nil, false
			}
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(RecordSet, 0, len(keys))
		for _, key := range keys {
			out = append(out, Record(v[key].(map[string]interface{})))
		}
		return out, true
	}
	return nil, false
}

func toRecordSet(rows []interface{}) RecordSet {
	out := make(RecordSet, 0, len(rows))
	for _, row := range rows {
		if rec, ok := row.(map[string]interface{}); ok {
			out = append(out, Record(rec))
			continue
		}
		out = append(out, row)
	}
	return out
}
