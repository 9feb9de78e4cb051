/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package selector

import (
	"fmt"
	"regexp"
)

// CompileWhitelist compiles class whitelist patterns. Invalid patterns are
// skipped and returned as errors so callers can report them.
func CompileWhitelist(patterns []string) ([]*regexp.Regexp, []error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	var errs []error
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("class whitelist pattern %q: %w", p, err))
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled, errs
}
