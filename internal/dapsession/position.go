package dapsession

import (
	"math"
	"strings"
)

// isGeneratedPath reports whether path names a compiled (generated) file,
// per the ".gen" extension convention spec.md's scenario 4 uses
// (`calc.gen` -> `calc.src`). Any other extension is treated as an original
// compile-to-host source.
func isGeneratedPath(path string) bool {
	return strings.HasSuffix(path, ".gen")
}

// translateInbound converts a position named on an IDE-facing surface
// (setBreakpoints input) into the generated-file coordinates the breakpoint
// catalogs are keyed by, per spec §4.5.3: reverse-translate an original
// path before consulting the catalog; pass a generated path, or any
// position with no mapping, through untranslated.
//
// The catalog is keyed by the 1-based line numbers the host interpreter's
// debug info reports, one past the 0-based generated line index the
// translator resolves against its mapping table.
func (s *Session) translateInbound(path string, line, column int) (genPath string, genLine int) {
	if isGeneratedPath(path) || s.generatedPath == "" {
		return path, line
	}
	pos, err := s.translator.ReverseLookup(s.generatedPath, path, line, column)
	if err != nil {
		return path, line
	}
	return pos.File, pos.Line + 1
}

// translateOutbound converts a generated-file position (published by the
// line hook, as a 1-based line number matching the host interpreter's debug
// info) into the IDE-facing original-source coordinates, per spec §4.5.3:
// forward-translate a generated path before sending it to the IDE; pass
// through untranslated on no mapping.
//
// The query column is pinned to the widest possible value so the lookup
// resolves to the rightmost (last) mapping entry on the line regardless of
// the column the IDE cares about: line-only breakpoints carry no column of
// their own to query with.
func (s *Session) translateOutbound(path string, line int) (outPath string, outLine int) {
	if !isGeneratedPath(path) {
		return path, line
	}
	pos, err := s.translator.ForwardLookup(path, line-1, math.MaxInt32)
	if err != nil {
		return path, line
	}
	return pos.File, pos.Line
}
