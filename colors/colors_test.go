/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package colors

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"short hex", "#F00", []string{"#ff0000", "rgb(255,0,0)"}},
		{"rgb", "rgb(59, 130, 246)", []string{"rgb(59,130,246)", "#3b82f6"}},
		{"named", "red", []string{"red", "#ff0000", "rgb(255,0,0)"}},
		{"translucent", "rgba(0, 0, 0, 0.5)", []string{"rgba(0,0,0,0.5)", "#00000080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Keys(tt.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Keys(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestKeys_NotAColor(t *testing.T) {
	_, err := Keys("1rem")
	if !errors.Is(err, ErrNotAColor) {
		t.Errorf("expected ErrNotAColor, got %v", err)
	}
}

func TestNearest(t *testing.T) {
	values := []string{"1rem", "var(--x)", "#0000ff", "#ff0000", "#fe0000", "#00ff00"}

	got, err := Nearest("#ff0000", values, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Value != "#ff0000" || got[0].Distance != 0 {
		t.Errorf("exact match should rank first, got %+v", got[0])
	}
	if got[1].Value != "#fe0000" {
		t.Errorf("expected #fe0000 second, got %+v", got[1])
	}

	all, err := Nearest("#ff0000", values, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected only the 4 color values, got %v", all)
	}
}

func TestNearest_NotAColor(t *testing.T) {
	if _, err := Nearest("nope", []string{"#fff"}, 1); !errors.Is(err, ErrNotAColor) {
		t.Errorf("expected ErrNotAColor, got %v", err)
	}
}

func TestSwatch(t *testing.T) {
	if got := Swatch("#ff0000"); !strings.Contains(got, "48;2;255;0;0") {
		t.Errorf("unexpected swatch %q", got)
	}
	if Swatch("1rem") != "" {
		t.Error("non-colors have no swatch")
	}
	if !IsColor("hsl(0, 100%, 50%)") || IsColor("var(--x)") {
		t.Error("IsColor misclassified")
	}
}
