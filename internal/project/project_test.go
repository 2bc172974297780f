package project

import (
	"encoding/json"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/deluxepaint/internal/layer"
	"github.com/ha1tch/deluxepaint/internal/pixel"
	"github.com/ha1tch/deluxepaint/internal/stroke"
)

// twoLayerStack builds a project with translucent and opaque content on
// both layers.
func twoLayerStack(t *testing.T) *layer.Stack {
	t.Helper()
	s := layer.NewStack(32, 24)
	s.ActiveLayer().Buffer.Fill(color.RGBA{R: 10, G: 200, B: 30, A: 255})

	top := s.Add()
	r := stroke.New(top.Buffer, stroke.Draw, color.RGBA{R: 128, G: 0, B: 64, A: 128}, 6, 1)
	r.Begin(2, 2)
	r.MoveTo(15, 12)
	r.MoveTo(28, 20)
	r.End(30, 22)
	require.NoError(t, top.Buffer.Set(0, 23, color.RGBA{R: 1, A: 2}))

	s.SetOpacity(1, 100)
	s.SetVisible(0, false)
	s.SetActive(0)
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	src := twoLayerStack(t)
	dir := filepath.Join(t.TempDir(), "drawing")
	require.NoError(t, Save(src, dir))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, src.Len(), got.Len())
	assert.Equal(t, src.Width(), got.Width())
	assert.Equal(t, src.Height(), got.Height())
	assert.Equal(t, src.Active(), got.Active())
	for i, want := range src.Layers() {
		l, ok := got.Layer(i)
		require.True(t, ok)
		assert.Equal(t, want.ID, l.ID)
		assert.Equal(t, want.Visible, l.Visible)
		assert.Equal(t, want.Opacity, l.Opacity)
		assert.True(t, want.Buffer.Equal(l.Buffer), "layer %d pixels differ", i)
	}
}

func TestSave_MetadataLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(twoLayerStack(t), dir))

	meta, err := Inspect(dir)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, meta.Version)
	assert.Equal(t, []string{"layer_0.png", "layer_1.png"}, meta.LayerFiles)
	assert.Equal(t, []bool{false, true}, meta.VisibilityFlags)
	assert.Equal(t, []int{255, 100}, meta.LayerAlphas)
	assert.Equal(t, 0, meta.ActiveLayerIndex)
	for _, f := range meta.LayerFiles {
		assert.FileExists(t, filepath.Join(dir, f))
	}
	assert.NoFileExists(t, filepath.Join(dir, MetadataFile+".tmp"))
}

func TestSave_RemovesStaleLayers(t *testing.T) {
	dir := t.TempDir()
	s := layer.NewStack(4, 4)
	s.Add()
	s.Add()
	require.NoError(t, Save(s, dir))
	require.FileExists(t, filepath.Join(dir, "layer_2.png"))

	s.Delete(2)
	require.NoError(t, Save(s, dir))
	assert.NoFileExists(t, filepath.Join(dir, "layer_2.png"))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestSave_FailedEncodeKeepsPreviousSave(t *testing.T) {
	dir := t.TempDir()
	first := twoLayerStack(t)
	require.NoError(t, Save(first, dir))

	// A directory squatting on a temp name makes that layer's encode fail.
	blocker := filepath.Join(dir, "layer_1.png.tmp")
	require.NoError(t, os.Mkdir(blocker, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blocker, "keep"), nil, 0o644))

	second := first.Clone()
	second.ActiveLayer().Buffer.Fill(color.RGBA{B: 255, A: 255})
	require.Error(t, Save(second, dir))
	assert.NoFileExists(t, filepath.Join(dir, "layer_0.png.tmp"))

	got, err := Load(dir)
	require.NoError(t, err)
	for i, want := range first.Layers() {
		l, _ := got.Layer(i)
		assert.True(t, want.Buffer.Equal(l.Buffer), "layer %d changed by a failed save", i)
	}
}

func writeMeta(t *testing.T, dir string, mutate func(m map[string]any)) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	mutate(m)
	data, err = json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), data, 0o644))
}

func TestLoad_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, dir string)
	}{
		{"missing metadata", func(t *testing.T, dir string) {
			require.NoError(t, os.Remove(filepath.Join(dir, MetadataFile)))
		}},
		{"unparsable metadata", func(t *testing.T, dir string) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, MetadataFile), []byte("{not json"), 0o644))
		}},
		{"missing layer file", func(t *testing.T, dir string) {
			require.NoError(t, os.Remove(filepath.Join(dir, "layer_1.png")))
		}},
		{"undecodable layer file", func(t *testing.T, dir string) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "layer_0.png"), []byte("garbage"), 0o644))
		}},
		{"visibility length mismatch", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) { m["visibilityFlags"] = []bool{true} })
		}},
		{"opacity length mismatch", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) { m["layerAlphas"] = []int{1, 2, 3} })
		}},
		{"active out of range", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) { m["activeLayerIndex"] = 2 })
		}},
		{"size mismatch", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) { m["width"] = 64 })
		}},
		{"no layers", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) {
				m["layerFiles"] = []string{}
				m["visibilityFlags"] = []bool{}
				m["layerAlphas"] = []int{}
				delete(m, "layerIds")
			})
		}},
		{"path escape", func(t *testing.T, dir string) {
			writeMeta(t, dir, func(m map[string]any) { m["layerFiles"] = []string{"../layer_0.png", "layer_1.png"} })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, Save(twoLayerStack(t), dir))
			tt.corrupt(t, dir)

			s, err := Load(dir)
			assert.ErrorIs(t, err, ErrCorruptProject)
			assert.Nil(t, s)
		})
	}
}

func TestLoad_WithoutLayerIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(twoLayerStack(t), dir))
	writeMeta(t, dir, func(m map[string]any) { delete(m, "layerIds") })

	s, err := Load(dir)
	require.NoError(t, err)
	for _, l := range s.Layers() {
		assert.NotEmpty(t, l.ID)
	}
}

func TestReadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	src := pixel.New(3, 2)
	require.NoError(t, src.Set(1, 1, color.RGBA{G: 255, A: 255}))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src.RGBA()))
	require.NoError(t, f.Close())

	got, err := ReadImage(path)
	require.NoError(t, err)
	assert.True(t, src.Equal(got))

	_, err = ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
