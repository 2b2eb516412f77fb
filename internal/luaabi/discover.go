package luaabi

import (
	"os"
	"path/filepath"
	"runtime"
)

// Discover returns the ordered list of candidate shared-library paths to
// probe for version, per spec §4.1: "a project-local vendored directory
// first, then platform conventional locations." The list is exhausted in
// order; the first existing file wins. Naming conventions differ per
// OS/version (e.g. `liblua5.1.so.0` on Linux vs `liblua5.1.dylib` on
// macOS vs `lua51.dll` on Windows).
func Discover(version HostVersion) ([]string, error) {
	short, ok := shortVersionOf(version)
	if !ok {
		return nil, &unsupportedVersionError{version: version}
	}

	vendored := filepath.Join(".", "vendor", "lua", version.String())

	var names []string
	switch runtime.GOOS {
	case "darwin":
		names = []string{
			"liblua" + version.String() + ".dylib",
			"liblua" + short + ".dylib",
			"/usr/local/opt/lua@" + version.String() + "/lib/liblua" + version.String() + ".dylib",
			"/opt/homebrew/opt/lua@" + version.String() + "/lib/liblua" + version.String() + ".dylib",
		}
	case "windows":
		names = []string{
			"lua" + short + ".dll",
			"lua" + version.String() + ".dll",
		}
	default: // linux and other ELF platforms
		names = []string{
			"liblua" + version.String() + ".so",
			"liblua" + version.String() + ".so.0",
			"liblua" + short + ".so",
			"liblua" + short + ".so.0",
			"/usr/lib/liblua" + version.String() + ".so",
			"/usr/lib/x86_64-linux-gnu/liblua" + version.String() + ".so",
			"/usr/local/lib/liblua" + version.String() + ".so",
		}
	}

	out := make([]string, 0, len(names)+1)
	out = append(out, filepath.Join(vendored, names[0]))
	out = append(out, names...)
	return out, nil
}

// shortVersionOf returns the no-dot version suffix ("51".."54") used in
// some platform naming conventions (e.g. "lua51.dll").
func shortVersionOf(version HostVersion) (string, bool) {
	switch version {
	case V51:
		return "51", true
	case V52:
		return "52", true
	case V53:
		return "53", true
	case V54:
		return "54", true
	default:
		return "", false
	}
}

// firstExisting returns the first candidate path that exists on disk.
func firstExisting(candidates []string) (string, bool) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

type unsupportedVersionError struct{ version HostVersion }

func (e *unsupportedVersionError) Error() string {
	return "luaabi: unsupported host version"
}
