package engine

import "fmt"

// JoinType selects the equi-join semantics.
type JoinType string

const (
	JoinInner JoinType = "inner"
	JoinLeft  JoinType = "left"
	JoinRight JoinType = "right"
)

// Join combines two normalized record sequences on a key field pair. Merged
// rows are a shallow union of both sides with right side values winning on a
// name collision. Rows without the key field, and rows whose key can't be
// used as an index key (objects, arrays), never match.
func Join(left RecordSet, leftField string, right RecordSet, rightField string, joinType JoinType) (RecordSet, error) {
	switch joinType {
	case JoinInner, "":
		return innerJoin(left, leftField, right, rightField), nil
	case JoinLeft:
		return leftJoin(left, leftField, right, rightField), nil
	case JoinRight:
		return rightJoin(left, leftField, right, rightField), nil
	}
	return nil, &ValidationError{Msg: fmt.Sprintf("unsupported join type %q", joinType)}
}

func innerJoin(left RecordSet, leftField string, right RecordSet, rightField string) RecordSet {
	index, _ := buildIndex(right, rightField)
	out := RecordSet{}
	for _, row := range left {
		rec, ok := asRecord(row)
		if !ok {
			continue
		}
		key, ok := rec[leftField]
		if !ok || !indexable(key) {
			continue
		}
		match, ok := index[key]
		if !ok {
			continue
		}
		out = append(out, merge(rec, match))
	}
	return out
}

func leftJoin(left RecordSet, leftField string, right RecordSet, rightField string) RecordSet {
	index, rightFields := buildIndex(right, rightField)
	out := RecordSet{}
	for _, row := range left {
		rec, ok := asRecord(row)
		if !ok {
			continue
		}
		key, ok := rec[leftField]
		if !ok || !indexable(key) {
			continue
		}
		if match, ok := index[key]; ok {
			out = append(out, merge(rec, match))
			continue
		}
		out = append(out, padUnmatched(rec, rightFields))
	}
	return out
}

// rightJoin mirrors leftJoin with the index built over the left side.
// Right side values still win on a field name collision.
func rightJoin(left RecordSet, leftField string, right RecordSet, rightField string) RecordSet {
	index, leftFields := buildIndex(left, leftField)
	out := RecordSet{}
	for _, row := range right {
		rec, ok := asRecord(row)
		if !ok {
			continue
		}
		key, ok := rec[rightField]
		if !ok || !indexable(key) {
			continue
		}
		if match, ok := index[key]; ok {
			out = append(out, merge(match, rec))
			continue
		}
		out = append(out, padUnmatched(rec, leftFields))
	}
	return out
}

// buildIndex indexes rows by their value at field. Duplicate keys are simply
// overwritten, last write wins. The second return value is every field name
// seen on that side, used to null-fill unmatched rows in outer joins.
func buildIndex(rows RecordSet, field string) (map[interface{}]Record, []string) {
	index := map[interface{}]Record{}
	fields := []string{}
	seen := map[string]struct{}{}
	for _, row := range rows {
		rec, ok := asRecord(row)
		if !ok {
			continue
		}
		for name := range rec {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				fields = append(fields, name)
			}
		}
		key, ok := rec[field]
		if !ok || !indexable(key) {
			continue
		}
		index[key] = rec
	}
	return index, fields
}

func asRecord(row interface{}) (Record, bool) {
	switch rec := row.(type) {
	case Record:
		return rec, true
	case map[string]interface{}:
		return Record(rec), true
	}
	return nil, false
}

// indexable reports whether a JSON value can key the index. Objects and
// arrays aren't comparable and would panic as map keys.
func indexable(key interface{}) bool {
	switch key.(type) {
	case nil, string, bool, float64:
		return true
	}
	return false
}

func merge(base, override Record) Record {
	out := make(Record, len(base)+len(override))
	for name, value := range base {
		out[name] = value
	}
	for name, value := range override {
		out[name] = value
	}
	return out
}

// padUnmatched copies the row and nulls the other side's fields. Fields the
// row already carries keep their value.
func padUnmatched(rec Record, otherFields []string) Record {
	out := make(Record, len(rec)+len(otherFields))
	for name, value := range rec {
		out[name] = value
	}
	for _, name := range otherFields {
		if _, ok := out[name]; !ok {
			out[name] = nil
		}
	}
	return out
}
