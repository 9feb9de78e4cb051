/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package index maintains the reverse index from normalized CSS values to
// the design tokens that declare them.
//
// Every failure while indexing a file (unreadable, stale, unparseable,
// unnormalizable value) degrades to that item being absent from the index.
// Mutating operations are serialized; lookups may run concurrently with them
// and always return copies.
package index

import (
	"cmp"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/sync/errgroup"

	"bennypowers.dev/tokenindex/config"
	"bennypowers.dev/tokenindex/css"
	tifs "bennypowers.dev/tokenindex/fs"
	"bennypowers.dev/tokenindex/internal/logger"
	"bennypowers.dev/tokenindex/normalize"
	"bennypowers.dev/tokenindex/token"
)

// Stats summarizes the index contents.
type Stats struct {
	Files   int `json:"files"`
	Values  int `json:"values"`
	Records int `json:"records"`
}

// Index is the searchable token store.
type Index struct {
	fs      tifs.FileSystem
	parsers *css.ParserPool

	// write serializes Build, OnFileChange and Reconfigure.
	write     sync.Mutex
	cfg       *config.Config
	collector *css.Collector

	mu    sync.RWMutex
	state *state

	ready atomic.Bool
}

// New creates an empty, not-ready index. Invalid whitelist patterns are
// logged and skipped; use config.Config.Compile to surface them.
func New(filesystem tifs.FileSystem, cfg *config.Config) *Index {
	idx := &Index{
		fs:      filesystem,
		parsers: css.NewParserPool(css.DefaultPoolSize()),
		state:   newState(),
	}
	idx.configure(cfg)
	return idx
}

// Close releases the parser pool.
func (idx *Index) Close() {
	idx.parsers.Close()
}

// IsReady reports whether a full Build has completed.
func (idx *Index) IsReady() bool {
	return idx.ready.Load()
}

// Reconfigure replaces the configuration used by the next Build or OnFileChange.
func (idx *Index) Reconfigure(cfg *config.Config) {
	idx.write.Lock()
	defer idx.write.Unlock()
	idx.configure(cfg)
}

func (idx *Index) configure(cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.WithDefaults()
	whitelist, err := cfg.Compile()
	if err != nil {
		logger.Warn("%v", err)
	}
	idx.cfg = cfg
	idx.collector = css.NewCollector(idx.parsers, whitelist)
}

// Build discards all state, resolves the configured sources and indexes
// each of them. Files are read and parsed in parallel; records are inserted
// in discovery order. The new state replaces the old one when Build
// finishes, after which the index is ready.
func (idx *Index) Build() {
	idx.write.Lock()
	defer idx.write.Unlock()

	files, err := idx.cfg.ResolveFiles(idx.fs)
	if err != nil {
		logger.Debug("resolving sources: %v", err)
		files = nil
	}

	loaded := make([]*loadedFile, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			loaded[i] = idx.load(path)
			return nil
		})
	}
	_ = g.Wait()

	next := newState()
	for _, f := range loaded {
		next.add(f)
	}

	idx.mu.Lock()
	idx.state = next
	idx.mu.Unlock()

	idx.ready.Store(true)
	logger.Debug("indexed %d files", len(files))
}

// OnFileChange purges every record of path and indexes it again.
// A file that can no longer be read simply leaves the index.
func (idx *Index) OnFileChange(path string) {
	idx.write.Lock()
	defer idx.write.Unlock()

	f := idx.load(path)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.state.purge(path)
	idx.state.add(f)
}

// FindByValue returns the records whose normalized value is key.
// Unknown keys yield an empty slice.
func (idx *Index) FindByValue(key string) []token.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bucket, _ := idx.state.byValue.Get(key)
	return copyRecords(bucket)
}

// FindByReferencedVariable returns every record whose value is a reference
// to name, in bucket then insertion order.
func (idx *Index) FindByReferencedVariable(name string) []token.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	result := []token.Record{}
	for pair := idx.state.byValue.Oldest(); pair != nil; pair = pair.Next() {
		for _, r := range pair.Value {
			if r.IsReference() && r.ReferencedVariable == name {
				result = append(result, *r)
			}
		}
	}
	return result
}

// AllFileSummaries returns a summary for every indexed file, sorted by path.
func (idx *Index) AllFileSummaries() []token.FileSummary {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	result := make([]token.FileSummary, 0, len(idx.state.summaries))
	for _, s := range idx.state.summaries {
		result = append(result, *s)
	}
	slices.SortFunc(result, func(a, b token.FileSummary) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return result
}

// FileSummary returns the summary for path, if it was indexed.
func (idx *Index) FileSummary(path string) (token.FileSummary, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	s, ok := idx.state.summaries[path]
	if !ok {
		return token.FileSummary{}, false
	}
	return *s, true
}

// Values returns every normalized value in the index, sorted.
func (idx *Index) Values() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	values := make([]string, 0, idx.state.byValue.Len())
	for pair := idx.state.byValue.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Key)
	}
	slices.Sort(values)
	return values
}

// Stats reports the size of the index.
func (idx *Index) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return Stats{
		Files:   len(idx.state.summaries),
		Values:  idx.state.byValue.Len(),
		Records: len(idx.state.keys),
	}
}

// loadedFile is the outcome of reading and collecting one file.
// A nil result means the file contributes nothing.
type loadedFile struct {
	path    string
	modTime time.Time
	result  *css.Result
}

func (idx *Index) load(path string) *loadedFile {
	f := &loadedFile{path: path}

	modTime, err := tifs.ModTime(idx.fs, path)
	if err != nil {
		logger.Debug("skipping %s: %v", path, err)
		return f
	}
	src, err := idx.fs.ReadFile(path)
	if err != nil {
		logger.Debug("skipping %s: %v", path, err)
		return f
	}

	// Parse failures leave the file without a summary.
	result, err := idx.collector.Collect(path, src)
	if err != nil {
		logger.Debug("skipping %s: %v", path, err)
		return f
	}

	f.modTime = modTime
	f.result = result
	return f
}

type state struct {
	byValue   *orderedmap.OrderedMap[string, []*token.Record]
	keys      map[token.Key]struct{}
	modTimes  map[string]time.Time
	summaries map[string]*token.FileSummary
}

func newState() *state {
	return &state{
		byValue:   orderedmap.New[string, []*token.Record](),
		keys:      make(map[token.Key]struct{}),
		modTimes:  make(map[string]time.Time),
		summaries: make(map[string]*token.FileSummary),
	}
}

// add inserts a loaded file unless it failed to load or is not newer than
// what is already recorded for its path.
func (s *state) add(f *loadedFile) {
	if f == nil || f.result == nil {
		return
	}
	if prev, ok := s.modTimes[f.path]; ok && !f.modTime.After(prev) {
		logger.Debug("skipping %s: not modified", f.path)
		return
	}
	s.modTimes[f.path] = f.modTime

	for _, r := range f.result.Records {
		s.insert(r)
	}

	s.summaries[f.path] = &token.FileSummary{
		Path:          f.path,
		HeaderComment: f.result.Header,
		TokenCount:    len(f.result.Records),
		LastModified:  f.modTime,
	}
}

func (s *state) insert(r *token.Record) {
	key, ok := normalize.Value(r.RawValue)
	if !ok {
		return
	}
	k := r.Key()
	if _, dup := s.keys[k]; dup {
		return
	}
	s.keys[k] = struct{}{}
	bucket, _ := s.byValue.Get(key)
	s.byValue.Set(key, append(bucket, r))
}

// purge removes every trace of path, dropping buckets it leaves empty.
func (s *state) purge(path string) {
	var empty []string
	for pair := s.byValue.Oldest(); pair != nil; pair = pair.Next() {
		kept := pair.Value[:0:0]
		for _, r := range pair.Value {
			if r.File == path {
				delete(s.keys, r.Key())
				continue
			}
			kept = append(kept, r)
		}
		if len(kept) == 0 {
			empty = append(empty, pair.Key)
			continue
		}
		pair.Value = kept
	}
	for _, key := range empty {
		s.byValue.Delete(key)
	}
	delete(s.modTimes, path)
	delete(s.summaries, path)
}

func copyRecords(records []*token.Record) []token.Record {
	result := make([]token.Record, len(records))
	for i, r := range records {
		result[i] = *r
	}
	return result
}
