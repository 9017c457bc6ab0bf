package runner

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFiles(t *testing.T, backend afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(backend, path, []byte(content), 0o644))
	}
}

func TestRunMissingEntry(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, afero.NewMemMapFs())
	cfg, err := NewConfig(Config{EntryPath: "/src/missing.js"})
	require.NoError(t, err)

	err = r.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRunWithDefaultsEmitsAndReports(t *testing.T) {
	t.Parallel()

	backend := afero.NewMemMapFs()
	seedFiles(t, backend, map[string]string{
		"/src/app.js":  "import \"./util\";\n",
		"/src/util.js": "export const u = 1;\n",
	})

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, backend)
	cfg, err := NewConfig(Config{EntryPath: "/src/app.js", PrintTop: true, LogLevel: "error", LogFormat: "text"})
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "TOP REFERENCES:")
	assert.Contains(t, out.String(), "/src/util.js -> 1 times referenced")
}

func TestRunDiscoversConfiguration(t *testing.T) {
	t.Parallel()

	backend := afero.NewMemMapFs()
	seedFiles(t, backend, map[string]string{
		"/src/app.ts":    "export const a = 1;\n",
		"/src/build.hcl": "environment {\n  typescript = true\n}\n",
	})

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, backend)
	cfg, err := NewConfig(Config{EntryPath: "/src/app.ts", LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cfg))
	assert.Contains(t, errOut.String(), "discovered configuration")
}

func TestRunScopedEmission(t *testing.T) {
	t.Parallel()

	backend := afero.NewMemMapFs()
	seedFiles(t, backend, map[string]string{
		"/app/entry.js":  "import \"/vendor/lib.js\";\n",
		"/vendor/lib.js": "export const lib = 1;\n",
	})

	var out, errOut bytes.Buffer
	r := New(&out, &errOut, backend)
	cfg, err := NewConfig(Config{EntryPath: "/app/entry.js", OutputDir: "/app", LogLevel: "info", LogFormat: "text"})
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cfg))
	assert.Contains(t, errOut.String(), "writes=1")
}

func TestNewConfigRequiresEntry(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
}
