package sourcemap

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"os"
	"strings"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

const sourceMappingURLMarker = "sourceMappingURL="

// LoadFile reads and parses a Source Map v3 JSON document from disk (spec
// §4.4: "File: read a JSON document from disk").
func LoadFile(path string) (*SourceMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &wferr.SourceMapLoadError{Path: path, Cause: err}
	}
	return parse(path, data)
}

// LoadInline parses a Source Map v3 JSON document already in memory, e.g.
// one embedded as a data URI inside the generated file itself.
func LoadInline(sourcePath string, data []byte) (*SourceMap, error) {
	return parse(sourcePath, data)
}

// LoadFromGeneratedFile reads generatedPath, extracts its trailing
// `sourceMappingURL=` comment, and loads the referenced map — either a
// sibling file path or an inline base64 data URI (spec §6: "Inline
// reference comment syntax ... data-URI form").
func LoadFromGeneratedFile(generatedPath string) (*SourceMap, error) {
	f, err := os.Open(generatedPath)
	if err != nil {
		return nil, &wferr.SourceMapLoadError{Path: generatedPath, Cause: err}
	}
	defer f.Close()

	ref, ok := findSourceMappingURL(f)
	if !ok {
		return nil, &wferr.SourceMapLoadError{Path: generatedPath, Cause: errNoSourceMappingComment}
	}

	if data, ok := decodeDataURI(ref); ok {
		return LoadInline(generatedPath, data)
	}
	return LoadFile(resolveSibling(generatedPath, ref))
}

func findSourceMappingURL(f *os.File) (string, bool) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var last string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if idx := strings.LastIndex(line, sourceMappingURLMarker); idx >= 0 {
			last = strings.TrimSpace(line[idx+len(sourceMappingURLMarker):])
		}
	}
	return last, last != ""
}

func decodeDataURI(ref string) ([]byte, bool) {
	const prefix = "data:application/json;base64,"
	if !strings.HasPrefix(ref, prefix) {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(ref[len(prefix):])
	if err != nil {
		return nil, false
	}
	return data, true
}

func resolveSibling(generatedPath, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return ref
	}
	dir := generatedPath[:strings.LastIndex(generatedPath, "/")+1]
	return dir + ref
}

func parse(path string, data []byte) (*SourceMap, error) {
	var raw rawSourceMapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &wferr.SourceMapLoadError{Path: path, Cause: err}
	}
	sm := &SourceMap{
		GeneratedFile:  raw.File,
		SourceRoot:     raw.SourceRoot,
		Sources:        raw.Sources,
		SourcesContent: raw.SourcesContent,
		Names:          raw.Names,
		Mappings:       raw.Mappings,
	}
	sm.byLine = parseMappings(sm.Mappings)
	return sm, nil
}

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

var errNoSourceMappingComment = sentinelError("no sourceMappingURL comment found")
