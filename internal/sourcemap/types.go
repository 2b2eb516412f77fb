// Package sourcemap implements the source-map translator (L3): parsing
// Source Map v3 documents and answering forward/reverse position lookups
// between a compiled (generated) file and the original sources it was
// produced from.
package sourcemap

// SourceMap is the parsed form of a Source Map v3 document, associated
// with exactly one compiled file path.
type SourceMap struct {
	GeneratedFile  string   // the map's own "file" field, if present
	SourceRoot     string
	Sources        []string // ordered list of original paths
	SourcesContent []string // per-source content, aligned to Sources; "" if absent
	Names          []string
	Mappings       string // opaque VLQ-encoded segments string

	// byLine holds the decoded mapping entries for GeneratedFile, one
	// slice per zero-based generated line, sorted by GeneratedColumn.
	byLine [][]MappingEntry
}

// MappingEntry is one decoded VLQ segment: a correspondence between a
// generated position and an original one.
type MappingEntry struct {
	GeneratedColumn int
	SourceIndex     int // index into SourceMap.Sources; -1 if this segment has no source
	OriginalLine    int
	OriginalColumn  int
	NameIndex       int // index into SourceMap.Names; -1 if absent
}

// PositionLookup is the result of a forward or reverse lookup.
type PositionLookup struct {
	File   string
	Line   int
	Column int
}

// rawSourceMapJSON mirrors the on-disk Source Map v3 JSON shape (spec
// §6: "Standard Source Map v3").
type rawSourceMapJSON struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}
