package http

import (
	"testing"
	"time"
)

func TestParseDateFound(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		got, err := parseDateFound("2025-05-20")
		if err != nil {
			t.Fatalf("parseDateFound returned error: %v", err)
		}
		want := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("rfc3339 timestamp", func(t *testing.T) {
		got, err := parseDateFound("2025-05-20T15:04:05Z")
		if err != nil {
			t.Fatalf("parseDateFound returned error: %v", err)
		}
		if got.Hour() != 15 || got.Minute() != 4 {
			t.Fatalf("expected time component preserved, got %v", got)
		}
	})

	t.Run("empty is zero", func(t *testing.T) {
		got, err := parseDateFound("")
		if err != nil {
			t.Fatalf("parseDateFound returned error: %v", err)
		}
		if !got.IsZero() {
			t.Fatalf("expected zero time, got %v", got)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := parseDateFound("20/05/2025"); err == nil {
			t.Fatal("expected error for unsupported format, got nil")
		}
	})
}

func TestParseIntParam(t *testing.T) {
	if got := parseIntParam("", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := parseIntParam("42", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := parseIntParam("abc", 7); got != 7 {
		t.Fatalf("expected fallback for garbage, got %d", got)
	}
}
