package sourcemap

import (
	"sort"
	"strings"
	"sync"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// Translator maintains a map from compiled (generated) file path to its
// parsed SourceMap (spec §4.4), serving forward and reverse position
// lookups for the DAP session.
type Translator struct {
	mu   sync.RWMutex
	maps map[string]*SourceMap // keyed by generated file path
}

// NewTranslator constructs an empty Translator.
func NewTranslator() *Translator {
	return &Translator{maps: make(map[string]*SourceMap)}
}

// Register associates generatedPath with an already-loaded SourceMap. The
// map is stored as is; lookups prefix each source with the map's
// SourceRoot (if any), never with generatedPath's directory.
func (t *Translator) Register(generatedPath string, sm *SourceMap) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.maps[generatedPath] = sm
}

// Load reads generatedPath's trailing sourceMappingURL comment, loads the
// referenced map, and registers it. On failure the generated path is left
// unregistered so callers fall back to pass-through translation with a
// warning, per spec §7's SourceMapLoad error semantics.
func (t *Translator) Load(generatedPath string) error {
	sm, err := LoadFromGeneratedFile(generatedPath)
	if err != nil {
		return err
	}
	t.Register(generatedPath, sm)
	return nil
}

// ForwardLookup translates a {generatedPath, line, column} position to its
// original-source position, per spec §4.4: "forward lookup finds the
// rightmost entry with generated_column ≤ the query column."
func (t *Translator) ForwardLookup(generatedPath string, line, column int) (PositionLookup, error) {
	sm, ok := t.lookupMap(generatedPath)
	if !ok {
		return PositionLookup{}, &wferr.NotFoundError{What: "source map for " + generatedPath}
	}
	if line < 0 || line >= len(sm.byLine) {
		return PositionLookup{}, &wferr.NotFoundError{What: "generated line"}
	}
	entries := sm.byLine[line]
	idx := sort.Search(len(entries), func(i int) bool { return entries[i].GeneratedColumn > column })
	if idx == 0 {
		return PositionLookup{}, &wferr.NotFoundError{What: "generated position"}
	}
	entry := entries[idx-1]
	if entry.SourceIndex < 0 || entry.SourceIndex >= len(sm.Sources) {
		return PositionLookup{}, &wferr.NotFoundError{What: "source index"}
	}
	return PositionLookup{
		File:   resolveSourcePath(sm, entry.SourceIndex),
		Line:   entry.OriginalLine,
		Column: entry.OriginalColumn,
	}, nil
}

// ReverseLookup translates an original-source position back to a position
// in its generated file, per spec §4.4: "reverse lookup scans entries
// matching the query line/column and returns the first hit."
func (t *Translator) ReverseLookup(generatedPath, originalPath string, line, column int) (PositionLookup, error) {
	sm, ok := t.lookupMap(generatedPath)
	if !ok {
		return PositionLookup{}, &wferr.NotFoundError{What: "source map for " + generatedPath}
	}
	sourceIdx := indexOfSource(sm, originalPath)
	if sourceIdx < 0 {
		return PositionLookup{}, &wferr.NotFoundError{What: "original source " + originalPath}
	}
	for genLine, entries := range sm.byLine {
		for _, e := range entries {
			if e.SourceIndex == sourceIdx && e.OriginalLine == line && e.OriginalColumn == column {
				return PositionLookup{File: generatedPath, Line: genLine, Column: e.GeneratedColumn}, nil
			}
		}
	}
	// No exact column match: fall back to the first entry on the matching
	// original line, since multiple generated columns may map to one
	// original position (spec §7's near-inverse invariant note).
	for genLine, entries := range sm.byLine {
		for _, e := range entries {
			if e.SourceIndex == sourceIdx && e.OriginalLine == line {
				return PositionLookup{File: generatedPath, Line: genLine, Column: e.GeneratedColumn}, nil
			}
		}
	}
	return PositionLookup{}, &wferr.NotFoundError{What: "original position"}
}

// HandleBundleMode returns the full list of original paths a generated
// file's source map resolves to, used when the session advertises
// multiple original files backed by one compiled file (spec §4.4).
func (t *Translator) HandleBundleMode(generatedPath string) []string {
	sm, ok := t.lookupMap(generatedPath)
	if !ok {
		return nil
	}
	out := make([]string, len(sm.Sources))
	for i := range sm.Sources {
		out[i] = resolveSourcePath(sm, i)
	}
	return out
}

// LookupWithFallback returns the closest loaded source map by path when no
// exact match exists, per spec §4.4 — generated paths are compared by
// longest common path-prefix length, breaking ties by shortest registered
// path.
func (t *Translator) LookupWithFallback(path string) (string, *SourceMap, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if sm, ok := t.maps[path]; ok {
		return path, sm, true
	}

	var bestPath string
	var bestSM *SourceMap
	bestScore := -1
	for candidate, sm := range t.maps {
		score := commonPrefixLen(path, candidate)
		if score > bestScore || (score == bestScore && len(candidate) < len(bestPath)) {
			bestScore, bestPath, bestSM = score, candidate, sm
		}
	}
	if bestSM == nil {
		return "", nil, false
	}
	return bestPath, bestSM, true
}

func (t *Translator) lookupMap(generatedPath string) (*SourceMap, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sm, ok := t.maps[generatedPath]
	return sm, ok
}

func resolveSourcePath(sm *SourceMap, idx int) string {
	src := sm.Sources[idx]
	if sm.SourceRoot == "" || strings.HasPrefix(src, "/") {
		return src
	}
	return strings.TrimSuffix(sm.SourceRoot, "/") + "/" + src
}

func indexOfSource(sm *SourceMap, path string) int {
	for i, s := range sm.Sources {
		if s == path || resolveSourcePath(sm, i) == path {
			return i
		}
	}
	return -1
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
