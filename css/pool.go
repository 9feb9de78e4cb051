/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"fmt"
	"runtime"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ParserPool hands out tree-sitter parsers per language.
// Parsers are created lazily up to the pool size; Parse blocks when all
// parsers for a language are busy. Safe for concurrent use.
type ParserPool struct {
	mu     sync.Mutex
	pools  map[Language]*languagePool
	size   int
	closed bool
}

type languagePool struct {
	parsers chan *ts.Parser
	created int
}

// DefaultPoolSize is the number of parsers kept per language.
func DefaultPoolSize() int {
	return max(runtime.NumCPU(), 2)
}

// NewParserPool creates a pool holding up to size parsers per language.
func NewParserPool(size int) *ParserPool {
	if size <= 0 {
		size = DefaultPoolSize()
	}
	return &ParserPool{
		pools: make(map[Language]*languagePool),
		size:  size,
	}
}

// Parse parses src with the grammar for lang.
// The caller must Close the returned tree.
func (p *ParserPool) Parse(lang Language, src []byte) (*ts.Tree, error) {
	parser, err := p.acquire(lang)
	if err != nil {
		return nil, err
	}
	tree := parser.Parse(src, nil)
	p.release(lang, parser)

	if tree == nil {
		return nil, fmt.Errorf("%w: %s parser returned no tree", ErrParse, lang)
	}
	return tree, nil
}

func (p *ParserPool) acquire(lang Language) (*ts.Parser, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	lp, ok := p.pools[lang]
	if !ok {
		lp = &languagePool{parsers: make(chan *ts.Parser, p.size)}
		p.pools[lang] = lp
	}

	select {
	case parser := <-lp.parsers:
		p.mu.Unlock()
		return parser, nil
	default:
	}

	if lp.created >= p.size {
		p.mu.Unlock()
		parser, ok := <-lp.parsers
		if !ok {
			return nil, ErrPoolClosed
		}
		return parser, nil
	}

	ptr, err := lang.pointer()
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	parser := ts.NewParser()
	if err := parser.SetLanguage(ts.NewLanguage(ptr)); err != nil {
		parser.Close()
		p.mu.Unlock()
		return nil, fmt.Errorf("failed to set %s language: %w", lang, err)
	}
	lp.created++
	p.mu.Unlock()
	return parser, nil
}

// release returns parser to its pool. Parsers outliving Close are freed.
func (p *ParserPool) release(lang Language, parser *ts.Parser) {
	p.mu.Lock()
	defer p.mu.Unlock()

	lp := p.pools[lang]
	if p.closed || lp == nil {
		parser.Close()
		return
	}
	select {
	case lp.parsers <- parser:
	default:
		parser.Close()
	}
}

// Close releases every idle parser. Parses in flight finish normally;
// later ones fail with ErrPoolClosed.
func (p *ParserPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for lang, lp := range p.pools {
		close(lp.parsers)
		for parser := range lp.parsers {
			parser.Close()
		}
		delete(p.pools, lang)
	}
}
