package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/message"
)

func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAndApplyRenameSetDrop(t *testing.T) {
	path := writeDoc(t, `
ops:
  - rename: src
    to: source
  - set: env
    value: staging
  - drop: scratch
`)
	doc, err := Load(path)
	require.NoError(t, err)

	out, err := doc.Apply(message.Record{"src": "10.0.0.1", "scratch": "x"})
	require.NoError(t, err)
	require.Equal(t, message.Record{"source": "10.0.0.1", "env": "staging"}, out)
}

func TestApplyDropIfEmptyDropsRecord(t *testing.T) {
	doc := &Document{Ops: []Op{{DropIfEmpty: "msg"}}}

	out, err := doc.Apply(message.Record{"msg": ""})
	require.NoError(t, err)
	require.Nil(t, out)

	out, err = doc.Apply(message.Record{"msg": "hello"})
	require.NoError(t, err)
	require.Equal(t, message.Record{"msg": "hello"}, out)
}

func TestApplyUnrecognizedVerbErrors(t *testing.T) {
	doc := &Document{Ops: []Op{{}}}
	_, err := doc.Apply(message.Record{})
	require.Error(t, err)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
