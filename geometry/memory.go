package geometry

import (
	"fmt"
	"path"
	"strings"
)

// Memory is a reference Delegate backed by an in-memory file map, used by
// this module's own tests and as a starting point for hosts embedding the
// interpreter without a real filesystem (e.g. a WASM build with a virtual
// project tree).
type Memory struct {
	Files map[string]string // path -> file content
	Logs  [][]any

	// GeometryFiles lets a test register non-text files (models) that
	// ImportGeometry should resolve to a pre-built Node.
	GeometryFiles map[string]*Node
}

// NewMemory returns an empty Memory delegate.
func NewMemory() *Memory {
	return &Memory{
		Files:         make(map[string]string),
		GeometryFiles: make(map[string]*Node),
	}
}

// ResolveURL joins path against baseURL the way a simple relative-path
// filesystem would; it never contacts a network.
func (m *Memory) ResolveURL(p, baseURL string) (string, error) {
	if strings.HasPrefix(p, "/") || baseURL == "" {
		return path.Clean(p), nil
	}
	return path.Clean(path.Join(path.Dir(baseURL), p)), nil
}

// ImportGeometry looks up a registered model file.
func (m *Memory) ImportGeometry(url string) (*Node, bool, error) {
	n, ok := m.GeometryFiles[url]
	if !ok {
		if _, isText := m.Files[url]; !isText {
			return nil, false, &Error{Kind: "not_found", URL: url}
		}
		return nil, false, nil
	}
	return n, true, nil
}

// DebugLog appends the printed values to Logs for assertions in tests.
func (m *Memory) DebugLog(values []any) {
	m.Logs = append(m.Logs, values)
}

// ReadText returns the content registered for url, implementing the
// Delegate method through which `.shape`/`.txt`/`.json`/`.yaml` imports
// read their raw text.
func (m *Memory) ReadText(url string) (string, error) {
	s, ok := m.Files[url]
	if !ok {
		return "", fmt.Errorf("geometry: no such file %q", url)
	}
	return s, nil
}
