/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package find

import (
	"errors"
	"slices"
	"testing"

	"bennypowers.dev/tokenindex/colors"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		anyColor bool
		expected []string
	}{
		{"hex", "#ABC", false, []string{"#aabbcc"}},
		{"rgb spacing", "rgb(59, 130, 246)", false, []string{"rgb(59,130,246)"}},
		{"var with fallback", "var(--x, red)", false, []string{"var(--x)"}},
		{"dimension", "1.50rem", false, []string{"1.5rem"}},
		{"any color", "#ABC", true, []string{"#aabbcc", "rgb(170,187,204)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Keys(tt.query, tt.anyColor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Keys(%q, %v) = %v, want %v", tt.query, tt.anyColor, got, tt.expected)
			}
		})
	}
}

func TestKeys_Errors(t *testing.T) {
	if _, err := Keys("   ", false); err == nil {
		t.Error("expected error for empty value")
	}
	if _, err := Keys("1rem", true); !errors.Is(err, colors.ErrNotAColor) {
		t.Errorf("expected ErrNotAColor, got %v", err)
	}
}
