package export

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/deluxepaint/internal/layer"
)

func sample(t *testing.T) *layer.Stack {
	t.Helper()
	s := layer.NewStack(20, 10)
	require.NoError(t, s.ActiveLayer().Buffer.Set(4, 4, color.RGBA{R: 255, A: 255}))
	return s
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.png", PNG},
		{"OUT.PNG", PNG},
		{"a/b.jpg", JPEG},
		{"b.jpeg", JPEG},
		{"doc.pdf", PDF},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatFor("image.gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = FormatFor("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWrite_PNGKeepsTransparency(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t), PNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	r, _, _, a := img.At(4, 4).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestWrite_JPEGOnWhite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t), JPEG))

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(15, 8).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestWrite_PDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t), PDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "a.jpg", "a.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, File(path, sample(t)), name)
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, fi.Size(), name)
	}

	err := File(filepath.Join(dir, "a.bmp"), sample(t))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "a.bmp"))
}
