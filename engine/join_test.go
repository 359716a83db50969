package engine

import (
	"reflect"
	"testing"
)

func TestInnerJoin(t *testing.T) {
	left := RecordSet{
		Record{"id": float64(1), "x": "a"},
		Record{"id": float64(2), "x": "b"},
	}
	right := RecordSet{
		Record{"id": float64(1), "y": "z"},
	}
	got, err := Join(left, "id", right, "id", JoinInner)
	if err != nil {
		t.Fatal(err)
	}
	want := RecordSet{Record{"id": float64(1), "x": "a", "y": "z"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestJoinRightSidePrecedence(t *testing.T) {
	left := RecordSet{Record{"id": float64(1), "name": "left"}}
	right := RecordSet{Record{"id": float64(1), "name": "right"}}
	got, err := Join(left, "id", right, "id", JoinInner)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].(Record)["name"] != "right" {
		t.Fatalf("right side must win on collision, got %v", got[0])
	}
}

func TestJoinDuplicateRightKeysLastWriteWins(t *testing.T) {
	left := RecordSet{Record{"id": float64(1)}}
	right := RecordSet{
		Record{"id": float64(1), "y": "first"},
		Record{"id": float64(1), "y": "second"},
	}
	got, err := Join(left, "id", right, "id", JoinInner)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].(Record)["y"] != "second" {
		t.Fatalf("expected last right record to win, got %v", got[0])
	}
}

func TestJoinMissingKeyFieldDropped(t *testing.T) {
	left := RecordSet{
		Record{"id": float64(1)},
		Record{"other": float64(9)},
		"not a record",
	}
	right := RecordSet{Record{"id": float64(1)}}
	got, err := Join(left, "id", right, "id", JoinInner)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("rows without the key must be dropped, got %v", got)
	}
}

func TestLeftJoinKeepsUnmatchedRows(t *testing.T) {
	left := RecordSet{
		Record{"id": float64(1), "x": "a"},
		Record{"id": float64(2), "x": "b"},
	}
	right := RecordSet{Record{"id": float64(1), "y": "z"}}
	got, err := Join(left, "id", right, "id", JoinLeft)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both left rows, got %v", got)
	}
	unmatched := got[1].(Record)
	if unmatched["x"] != "b" {
		t.Fatalf("unexpected unmatched row %v", unmatched)
	}
	if value, ok := unmatched["y"]; !ok || value != nil {
		t.Fatalf("right fields must be null-filled, got %v", unmatched)
	}
}

func TestRightJoinKeepsUnmatchedRows(t *testing.T) {
	left := RecordSet{Record{"id": float64(1), "x": "a"}}
	right := RecordSet{
		Record{"id": float64(1), "y": "z"},
		Record{"id": float64(3), "y": "w"},
	}
	got, err := Join(left, "id", right, "id", JoinRight)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both right rows, got %v", got)
	}
	matched := got[0].(Record)
	if matched["x"] != "a" || matched["y"] != "z" {
		t.Fatalf("unexpected matched row %v", matched)
	}
	unmatched := got[1].(Record)
	if value, ok := unmatched["x"]; !ok || value != nil {
		t.Fatalf("left fields must be null-filled, got %v", unmatched)
	}
}

func TestJoinUnsupportedType(t *testing.T) {
	_, err := Join(RecordSet{}, "id", RecordSet{}, "id", "cross")
	if err == nil {
		t.Fatal("expected error for unsupported join type")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestJoinEmptySidesYieldEmptySet(t *testing.T) {
	got, err := Join(RecordSet{}, "id", RecordSet{Record{"id": float64(1)}}, "id", JoinInner)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
