/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package colors answers color queries against normalized index keys.
package colors

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/tokenindex/normalize"
)

// ErrNotAColor is returned for queries that do not parse as a CSS color.
var ErrNotAColor = errors.New("not a CSS color")

// Match is an index key and its perceptual distance from a query color.
type Match struct {
	Value    string  `json:"value"`
	Distance float64 `json:"distance"`
}

// Keys returns every normalized key a color may be indexed under:
// the query itself, its hex form and its rgb()/rgba() form.
func Keys(query string) ([]string, error) {
	c, err := csscolorparser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotAColor, query)
	}

	var keys []string
	add := func(k string) {
		if n, ok := normalize.Value(k); ok && !slices.Contains(keys, n) {
			keys = append(keys, n)
		}
	}

	add(query)
	add(c.HexString())
	r, g, b, _ := c.RGBA255()
	if c.A >= 1 {
		add(fmt.Sprintf("rgb(%d,%d,%d)", r, g, b))
	} else {
		add(fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, alpha(c.A)))
	}
	return keys, nil
}

// Nearest ranks the color-valued keys in values by CIEDE2000 distance from
// query. Keys that are not colors are ignored; limit <= 0 means no limit.
func Nearest(query string, values []string, limit int) ([]Match, error) {
	q, err := csscolorparser.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotAColor, query)
	}
	target := colorful.Color{R: q.R, G: q.G, B: q.B}

	var matches []Match
	for _, v := range values {
		c, err := csscolorparser.Parse(v)
		if err != nil {
			continue
		}
		d := target.DistanceCIEDE2000(colorful.Color{R: c.R, G: c.G, B: c.B})
		matches = append(matches, Match{Value: v, Distance: math.Round(d*10000) / 10000})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// IsColor reports whether value parses as a CSS color.
func IsColor(value string) bool {
	_, err := csscolorparser.Parse(value)
	return err == nil
}

// Swatch returns a 24-bit ANSI color block for a color value, or "" for anything else.
func Swatch(value string) string {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return ""
	}
	r, g, b, _ := c.RGBA255()
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m ", r, g, b)
}

func alpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*100)/100, 'f', -1, 64)
}
