package model

import (
	"testing"
	"time"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  Date
	}{
		{"time", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "2024-03-05"},
		{"string", "2024-01-10", "2024-01-10"},
		{"bytes", []byte("2023-12-31"), "2023-12-31"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.value); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if d != tt.want {
				t.Errorf("expected %q, got %q", tt.want, d)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error for int value")
	}
}

func TestDateValueAndDisplay(t *testing.T) {
	d := Date("2024-03-05")
	v, err := d.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "2024-03-05" {
		t.Errorf("unexpected value %v", v)
	}
	if d.Display() != "05.03.2024" {
		t.Errorf("unexpected display %s", d.Display())
	}

	v, err = Date("").Value()
	if err != nil || v != nil {
		t.Errorf("expected nil value for empty date, got %v, %v", v, err)
	}
}
