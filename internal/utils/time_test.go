package utils

import (
	"testing"
	"time"
)

func TestDBNowIsUTCWholeSeconds(t *testing.T) {
	got := DBNow()
	if got.Location() != time.UTC {
		t.Fatalf("location = %v", got.Location())
	}
	if got.Nanosecond() != 0 {
		t.Fatalf("expected whole seconds, got %v", got)
	}
	if d := time.Since(got); d < 0 || d > 2*time.Second {
		t.Fatalf("DBNow too far from now: %v", d)
	}
}

func TestFormatDate(t *testing.T) {
	at := time.Date(2024, 6, 3, 12, 0, 0, 0, time.Local)
	if got := FormatDate(at); got != "2024-06-03" {
		t.Fatalf("FormatDate = %q", got)
	}
}
