/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package css

import (
	"errors"
	"testing"
)

func TestParserPool_ReleaseAfterClose(t *testing.T) {
	pool := NewParserPool(1)

	parser, err := pool.acquire(LanguageCSS)
	if err != nil {
		t.Fatalf("acquire() unexpected error: %v", err)
	}

	pool.Close()
	pool.release(LanguageCSS, parser)

	if len(pool.pools) != 0 {
		t.Errorf("expected no pools after Close, got %d", len(pool.pools))
	}
}

func TestParserPool_ParseAfterClose(t *testing.T) {
	pool := NewParserPool(1)
	pool.Close()

	tree, err := pool.Parse(LanguageCSS, []byte(":root { --a: 1px; }"))
	if !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
	if tree != nil {
		t.Error("expected no tree")
	}
}

func TestParserPool_CloseWakesWaiters(t *testing.T) {
	pool := NewParserPool(1)

	held, err := pool.acquire(LanguageCSS)
	if err != nil {
		t.Fatalf("acquire() unexpected error: %v", err)
	}

	waited := make(chan error, 1)
	go func() {
		_, err := pool.acquire(LanguageCSS)
		waited <- err
	}()

	pool.Close()
	if err := <-waited; !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed for waiter, got %v", err)
	}
	pool.release(LanguageCSS, held)
}
