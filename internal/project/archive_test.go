package project

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveExtract(t *testing.T) {
	tmp := t.TempDir()
	src := twoLayerStack(t)
	dir := filepath.Join(tmp, "src")
	require.NoError(t, Save(src, dir))

	arc := filepath.Join(tmp, "drawing"+ArchiveExt)
	require.NoError(t, Archive(dir, arc))

	out := filepath.Join(tmp, "out")
	require.NoError(t, Extract(arc, out))
	got, err := Load(out)
	require.NoError(t, err)
	require.Equal(t, src.Len(), got.Len())
	for i, want := range src.Layers() {
		l, _ := got.Layer(i)
		assert.True(t, want.Buffer.Equal(l.Buffer))
		assert.Equal(t, want.Opacity, l.Opacity)
	}
}

func TestArchive_RejectsBrokenProject(t *testing.T) {
	tmp := t.TempDir()
	arc := filepath.Join(tmp, "x"+ArchiveExt)
	err := Archive(tmp, arc)
	assert.ErrorIs(t, err, ErrCorruptProject)
	assert.NoFileExists(t, arc)
}

func TestExtract_SkipsForeignEntries(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "src")
	require.NoError(t, Save(twoLayerStack(t), dir))

	arc := filepath.Join(tmp, "extra"+ArchiveExt)
	f, err := os.Create(arc)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{MetadataFile, "layer_0.png", "layer_1.png"} {
		require.NoError(t, addFile(zw, filepath.Join(dir, name), name))
	}
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out := filepath.Join(tmp, "out")
	require.NoError(t, Extract(arc, out))
	assert.NoFileExists(t, filepath.Join(out, "notes.txt"))
}

func TestExtract_NotAnArchive(t *testing.T) {
	tmp := t.TempDir()
	bad := filepath.Join(tmp, "bad"+ArchiveExt)
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	assert.ErrorIs(t, Extract(bad, filepath.Join(tmp, "out")), ErrCorruptProject)
}
