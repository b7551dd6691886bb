package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testDocs = `{"id": "p1", "title": "Annual budget", "content_type": "page", "allow_list": ["group_5"]}
{"id": "p2", "title": "Budget draft", "content_type": "file", "allow_list": ["group_users"]}
{"id": "", "title": "missing id", "allow_list": ["group_users"]}
`

// writeConfig writes a static-directory config whose index lives under t.TempDir.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf(`http:
  port: 8080
engine:
  index_path: %s
directory:
  driver: static
  users:
    alice:
      groups: [5]
`, filepath.Join(dir, "index"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"djinn-index", "--config", cfgPath, "--log-level", "error"}, args...)
	err := newApp(&out).Run(argv)
	return out.String(), err
}

func TestAppFlags(t *testing.T) {
	app := newApp(&bytes.Buffer{})

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"create", "index", "delete", "count", "query"}, names)

	t.Run("log-level defaults to info", func(t *testing.T) {
		var level *cli.StringFlag
		for _, flag := range app.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "log-level" {
				level = f
			}
		}
		require.NotNil(t, level)
		assert.Equal(t, "info", level.Value)
	})

	t.Run("workers defaults to 4", func(t *testing.T) {
		var workers *cli.IntFlag
		for _, flag := range app.Commands[1].Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "workers" {
				workers = f
			}
		}
		require.NotNil(t, workers)
		assert.Equal(t, 4, workers.Value)
	})
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "nope.yaml"), "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestCreate(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, cfg, "create")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	out, err = run(t, cfg, "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	_, err = run(t, cfg, "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exists")
}

func TestCount_NoIndex(t *testing.T) {
	_, err := run(t, writeConfig(t), "count")
	require.Error(t, err)
}

func TestIndexQueryDelete(t *testing.T) {
	cfg := writeConfig(t)
	docs := filepath.Join(filepath.Dir(cfg), "docs.jsonl")
	require.NoError(t, os.WriteFile(docs, []byte(testDocs), 0o600))

	_, err := run(t, cfg, "create")
	require.NoError(t, err)

	out, err := run(t, cfg, "index", "--workers", "2", docs)
	require.NoError(t, err)
	assert.Equal(t, "indexed: 2, failed: 0, invalid: 1\n", out)

	out, err = run(t, cfg, "count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	t.Run("query as group member", func(t *testing.T) {
		res := runQuery(t, cfg, "--user", "alice", "budget")
		assert.Equal(t, 2, res.Total)
		assert.ElementsMatch(t, []string{"p1", "p2"}, hitIDs(res))
	})

	t.Run("query as outsider", func(t *testing.T) {
		res := runQuery(t, cfg, "--user", "bob", "budget")
		assert.Equal(t, []string{"p2"}, hitIDs(res))
	})

	t.Run("content type filter", func(t *testing.T) {
		res := runQuery(t, cfg, "--user", "alice", "--content-type", "page", "budget")
		assert.Equal(t, []string{"p1"}, hitIDs(res))
	})

	t.Run("empty text", func(t *testing.T) {
		res := runQuery(t, cfg, "--user", "alice")
		assert.True(t, res.NoQuery)
		assert.Empty(t, res.Hits)
	})

	out, err = run(t, cfg, "delete", "p1")
	require.NoError(t, err)
	assert.Equal(t, "deleted: 1, failed: 0\n", out)

	out, err = run(t, cfg, "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestArgumentErrors(t *testing.T) {
	cfg := writeConfig(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"index without files", []string{"index"}, "at least one file"},
		{"delete without ids", []string{"delete"}, "at least one id"},
		{"query without user", []string{"query", "budget"}, "user"},
		{"group and owner", []string{"query", "--user", "alice", "--group", "5", "--owner", "bob", "x"}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, cfg, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func runQuery(t *testing.T, cfg string, args ...string) queryOutput {
	t.Helper()
	out, err := run(t, cfg, append([]string{"query"}, args...)...)
	require.NoError(t, err)
	var res queryOutput
	require.NoError(t, json.NewDecoder(strings.NewReader(out)).Decode(&res))
	return res
}

func hitIDs(res queryOutput) []string {
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids
}
