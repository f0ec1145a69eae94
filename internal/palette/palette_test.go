package palette

import "testing"

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"palette name", "Oranssi", "#F96635"},
		{"raw hex", "#93D3AE", "#93D3AE"},
		{"lowercase hex", "#abcdef", "#abcdef"},
		{"unknown", "Pink", DefaultColor},
		{"short hex", "#fff", DefaultColor},
		{"empty", "", DefaultColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColor(tt.key); got != tt.want {
				t.Errorf("ResolveColor(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveIcon(t *testing.T) {
	if got := ResolveIcon("Koulu"); got.Material != "school" {
		t.Errorf("expected school icon, got %+v", got)
	}
	if got := ResolveIcon("nope"); got != ResolveIcon(string(IconOther)) {
		t.Errorf("expected fallback icon, got %+v", got)
	}
}

func TestKeysSorted(t *testing.T) {
	icons := IconKeys()
	if len(icons) != 10 {
		t.Fatalf("expected 10 icons, got %d", len(icons))
	}
	for i := 1; i < len(icons); i++ {
		if icons[i-1] > icons[i] {
			t.Fatalf("icon keys not sorted: %v", icons)
		}
	}
	if len(ColorKeys()) != 8 {
		t.Errorf("expected 8 colors, got %d", len(ColorKeys()))
	}
}
