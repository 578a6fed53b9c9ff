package utils

import (
	"strings"
	"testing"
)

func TestTruncateWithEllipsis(t *testing.T) {
	if got := TruncateWithEllipsis("short", 100); got != "short" {
		t.Errorf("Expected short text unchanged, got %q", got)
	}
	if got := TruncateWithEllipsis("abcdef", 3); got != "abc..." {
		t.Errorf("Expected truncation with ellipsis, got %q", got)
	}
	if got := TruncateWithEllipsis("abcdef", 0); got != "abcdef" {
		t.Errorf("Expected non-positive limit to disable truncation, got %q", got)
	}
}

func TestTruncateWithEllipsisUTF8(t *testing.T) {
	// Cut lands inside a multi-byte rune; the partial sequence must be dropped
	text := "abécd"
	got := TruncateWithEllipsis(text, 3)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Expected ellipsis, got %q", got)
	}
	trimmed := strings.TrimSuffix(got, "...")
	if trimmed != "ab" {
		t.Errorf("Expected partial rune to be dropped, got %q", trimmed)
	}
}

func TestTruncateText(t *testing.T) {
	got := TruncateText(strings.Repeat("x", 10), 4)
	if got != "xxxx\n[... Content truncated due to size limits ...]" {
		t.Errorf("Unexpected truncation marker: %q", got)
	}
	if got := TruncateText("ok", 10); got != "ok" {
		t.Errorf("Expected short text unchanged, got %q", got)
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a": 1}`, `{"a": 1}`},
		{"Here you go:\n```json\n{\"a\": 1}\n```\nDone.", `{"a": 1}`},
		{`prefix {"a": {"b": 2}} suffix`, `{"a": {"b": 2}}`},
	}
	for _, tc := range cases {
		got, err := ExtractJSONObject(tc.in)
		if err != nil {
			t.Errorf("Unexpected error for %q: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
}

func TestExtractJSONObjectMissing(t *testing.T) {
	for _, in := range []string{"", "no braces here", "} reversed {"} {
		if _, err := ExtractJSONObject(in); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}
