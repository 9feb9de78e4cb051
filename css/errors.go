/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import "errors"

// ErrParse indicates the source could not be parsed as CSS.
// Files that fail to parse contribute nothing to the index.
var ErrParse = errors.New("css parse error")

// ErrPoolClosed is returned when parsing through a closed ParserPool.
var ErrPoolClosed = errors.New("parser pool closed")
