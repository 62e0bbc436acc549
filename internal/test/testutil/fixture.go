package testutil

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// FixtureDir is a temporary directory of result fixtures
type FixtureDir struct {
	t   *testing.T
	dir string
}

// NewFixtureDir creates a new, empty fixture directory removed when the test ends
func NewFixtureDir(t *testing.T) *FixtureDir {
	return &FixtureDir{t: t, dir: t.TempDir()}
}

// Dir returns the fixture directory
func (f *FixtureDir) Dir() string {
	return f.dir
}

// FS returns the directory as a file system
func (f *FixtureDir) FS() fs.FS {
	return os.DirFS(f.dir)
}

// WithFile encodes data by the extension of name and writes it.
// .json and .yaml/.yml are encoded; any other name is written as raw bytes
// and data must be a string or []byte.
func (f *FixtureDir) WithFile(name string, data interface{}) *FixtureDir {
	f.t.Helper()

	var (
		content []byte
		err     error
	)
	switch filepath.Ext(name) {
	case ".json":
		content, err = json.MarshalIndent(data, "", "  ")
	case ".yaml", ".yml":
		content, err = yaml.Marshal(data)
	default:
		switch raw := data.(type) {
		case string:
			content = []byte(raw)
		case []byte:
			content = raw
		default:
			f.t.Fatalf("Unsupported fixture data for %s: %T", name, data)
		}
	}
	require.NoError(f.t, err, "Failed to marshal fixture data")

	f.WithRaw(name, content)
	return f
}

// WithRaw writes content to name verbatim
func (f *FixtureDir) WithRaw(name string, content []byte) *FixtureDir {
	f.t.Helper()

	path := filepath.Join(f.dir, name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create directory")
	require.NoError(f.t, os.WriteFile(path, content, 0644), "Failed to write fixture file")
	return f
}

// FixtureFS writes the files to a temporary directory and returns it as a file system
func FixtureFS(t *testing.T, files map[string]interface{}) fs.FS {
	t.Helper()

	dir := NewFixtureDir(t)
	for name, data := range files {
		dir.WithFile(name, data)
	}
	return dir.FS()
}
