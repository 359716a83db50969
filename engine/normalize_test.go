package engine

import (
	"encoding/json"
	"reflect"
	"testing"
)

func normalizeJSON(t *testing.T, raw string) (RecordSet, bool) {
	t.Helper()
	var value interface{}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		t.Fatal(err)
	}
	return Normalize(value)
}

func TestNormalizeTopLevelArray(t *testing.T) {
	records, ok := normalizeJSON(t, `[{"a":1}]`)
	if !ok {
		t.Fatal("expected tabular result")
	}
	want := RecordSet{Record{"a": float64(1)}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("got %v, want %v", records, want)
	}
}

func TestNormalizeWrapperKeys(t *testing.T) {
	for _, raw := range []string{
		`{"results":[{"a":1}]}`,
		`{"data":[{"a":1}]}`,
		`{"rows":[{"a":1}]}`,
	} {
		records, ok := normalizeJSON(t, raw)
		if !ok {
			t.Fatalf("%s: expected tabular result", raw)
		}
		want := RecordSet{Record{"a": float64(1)}}
		if !reflect.DeepEqual(records, want) {
			t.Fatalf("%s: got %v, want %v", raw, records, want)
		}
	}
}

func TestNormalizeWrapperPriority(t *testing.T) {
	// results wins over data whatever the document order.
	records, ok := normalizeJSON(t, `{"data":[{"a":2}],"results":[{"a":1}]}`)
	if !ok {
		t.Fatal("expected tabular result")
	}
	want := RecordSet{Record{"a": float64(1)}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("got %v, want %v", records, want)
	}
}

func TestNormalizeDictOfRecords(t *testing.T) {
	records, ok := normalizeJSON(t, `{"1":{"a":1},"2":{"a":2}}`)
	if !ok {
		t.Fatal("expected tabular result")
	}
	want := RecordSet{Record{"a": float64(1)}, Record{"a": float64(2)}}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("got %v, want %v", records, want)
	}
}

func TestNormalizePassthrough(t *testing.T) {
	if _, ok := normalizeJSON(t, `{"status":"ok"}`); ok {
		t.Fatal("expected raw pass-through")
	}
	if _, ok := normalizeJSON(t, `"plain string"`); ok {
		t.Fatal("expected raw pass-through for scalar")
	}
	if _, ok := normalizeJSON(t, `42`); ok {
		t.Fatal("expected raw pass-through for number")
	}
}

func TestNormalizeNonRecordElementsPassThrough(t *testing.T) {
	records, ok := normalizeJSON(t, `[{"a":1},"loose",2]`)
	if !ok {
		t.Fatal("expected tabular result")
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(records))
	}
	if records[1] != "loose" {
		t.Fatalf("non-record element must pass through, got %v", records[1])
	}
}

func TestNormalizeEmptyMapping(t *testing.T) {
	records, ok := normalizeJSON(t, `{}`)
	if !ok {
		t.Fatal("an empty mapping is vacuously a dict of records")
	}
	if len(records) != 0 {
		t.Fatalf("expected empty record set, got %v", records)
	}
}
