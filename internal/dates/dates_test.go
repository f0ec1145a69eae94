package dates

import (
	"errors"
	"testing"
	"time"
)

func TestToStorage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"05.03.2024", "2024-03-05"},
		{"5.3.2024", "2024-03-05"},
		{"31.12.2023", "2023-12-31"},
		{"tomorrow", "tomorrow"},
		{"05.03", "05.03"},
		{"..2024", "2024-00-00"},
		{".7.2024", "2024-07-00"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToStorage(tt.in); got != tt.want {
			t.Errorf("ToStorage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-05", "05.03.2024"},
		{"2023-12-31", "31.12.2023"},
		{"garbage", "garbage"},
		{"2024-03", "2024-03"},
	}
	for _, tt := range tests {
		if got := ToDisplay(tt.in); got != tt.want {
			t.Errorf("ToDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		display := start.AddDate(0, 0, i).Format(DisplayLayout)
		if got := ToDisplay(ToStorage(display)); got != display {
			t.Fatalf("round trip %q -> %q", display, got)
		}
	}
}

func TestParseDisplay(t *testing.T) {
	iso, err := ParseDisplay(" 5.3.2024 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if iso != "2024-03-05" {
		t.Errorf("expected 2024-03-05, got %s", iso)
	}

	for _, bad := range []string{"31.02.2024", "tomorrow", "05.03.24", "1.1.24x", "2024-03-05", ""} {
		if _, err := ParseDisplay(bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParseDisplay(%q): expected ErrMalformed, got %v", bad, err)
		}
	}
}
