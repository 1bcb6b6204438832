package db

import (
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestStringListRoundTrip(t *testing.T) {
	v, err := StringList{"a.jpg", "b.jpg"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["a.jpg","b.jpg"]` {
		t.Fatalf("unexpected encoding %v", v)
	}

	var l StringList
	if err := l.Scan([]byte(`["x"]`)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(l) != 1 || l[0] != "x" {
		t.Fatalf("unexpected list %v", l)
	}
}

func TestStringListScanEmpty(t *testing.T) {
	for _, src := range []any{nil, "", []byte("null")} {
		var l StringList
		if err := l.Scan(src); err != nil {
			t.Fatalf("Scan(%v): %v", src, err)
		}
		if l == nil || len(l) != 0 {
			t.Fatalf("Scan(%v) = %#v, want empty non-nil", src, l)
		}
	}
	var l StringList
	if err := l.Scan(42); err == nil {
		t.Fatalf("expected error for int source")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !IsDuplicateKey(dup) {
		t.Fatalf("expected duplicate key")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 is not a duplicate key")
	}
}
