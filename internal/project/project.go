// Package project saves and loads layer stacks as a directory: one JSON
// metadata file plus one PNG per layer.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/ha1tch/deluxepaint/internal/layer"
	"github.com/ha1tch/deluxepaint/internal/pixel"
)

// MetadataFile is the name of the metadata record inside a project directory.
const MetadataFile = "project.json"

// FormatVersion is written into every saved project.
const FormatVersion = 1

// ErrCorruptProject is returned by Load when the directory does not hold a
// consistent project. Nothing is loaded in that case.
var ErrCorruptProject = errors.New("corrupt project")

// Metadata is the JSON record describing a project.
type Metadata struct {
	Version          int       `json:"version"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	ActiveLayerIndex int       `json:"activeLayerIndex"`
	VisibilityFlags  []bool    `json:"visibilityFlags"`
	LayerAlphas      []int     `json:"layerAlphas"`
	LayerFiles       []string  `json:"layerFiles"`
	LayerIDs         []string  `json:"layerIds,omitempty"`
	Modified         time.Time `json:"modified"`
}

// LayerFileName returns the stable file name of the i-th layer.
func LayerFileName(i int) string {
	return fmt.Sprintf("layer_%d.png", i)
}

var layerFilePattern = regexp.MustCompile(`^layer_\d+\.png$`)

// Save writes s into dir, creating it if needed. Layer images are encoded
// to temporary files and only renamed into place once every one of them
// encoded, so a failed encode leaves the previous save intact. The metadata
// is replaced last.
func Save(s *layer.Stack, dir string) error {
	snap := s.Clone()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}

	layers := snap.Layers()
	meta := Metadata{
		Version:          FormatVersion,
		Width:            snap.Width(),
		Height:           snap.Height(),
		ActiveLayerIndex: snap.Active(),
		VisibilityFlags:  make([]bool, len(layers)),
		LayerAlphas:      make([]int, len(layers)),
		LayerFiles:       make([]string, len(layers)),
		LayerIDs:         make([]string, len(layers)),
		Modified:         time.Now().UTC(),
	}

	var g errgroup.Group
	for i, l := range layers {
		name := LayerFileName(i)
		meta.VisibilityFlags[i] = l.Visible
		meta.LayerAlphas[i] = int(l.Opacity)
		meta.LayerFiles[i] = name
		meta.LayerIDs[i] = l.ID
		g.Go(func() error {
			return writePNG(filepath.Join(dir, name+tmpSuffix), l.Buffer)
		})
	}
	if err := g.Wait(); err != nil {
		removeTemps(dir, meta.LayerFiles)
		return err
	}
	for _, name := range meta.LayerFiles {
		p := filepath.Join(dir, name)
		if err := os.Rename(p+tmpSuffix, p); err != nil {
			removeTemps(dir, meta.LayerFiles)
			return fmt.Errorf("write layer file: %w", err)
		}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, MetadataFile), data); err != nil {
		return err
	}
	removeStale(dir, meta.LayerFiles)
	return nil
}

// writePNG stores a layer as 16-bit straight-alpha PNG so that loading it
// restores the exact premultiplied pixels.
func writePNG(path string, b *pixel.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create layer file: %w", err)
	}
	if err := png.Encode(f, b.NRGBA64()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

const tmpSuffix = ".tmp"

func removeTemps(dir string, names []string) {
	for _, name := range names {
		os.Remove(filepath.Join(dir, name+tmpSuffix))
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// removeStale deletes layer files left over from an earlier save with more
// layers. Failures are ignored; stale files are never referenced.
func removeStale(dir string, keep []string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	ref := make(map[string]bool, len(keep))
	for _, k := range keep {
		ref[k] = true
	}
	for _, e := range entries {
		if !e.IsDir() && layerFilePattern.MatchString(e.Name()) && !ref[e.Name()] {
			os.Remove(filepath.Join(dir, e.Name()))
		}
	}
}

// Inspect reads and validates the metadata of the project in dir without
// decoding any layer.
func Inspect(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("%w: read metadata: %w", ErrCorruptProject, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: parse metadata: %w", ErrCorruptProject, err)
	}
	if err := meta.validate(); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (m *Metadata) validate() error {
	n := len(m.LayerFiles)
	switch {
	case m.Width <= 0 || m.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrCorruptProject, m.Width, m.Height)
	case n == 0:
		return fmt.Errorf("%w: no layers", ErrCorruptProject)
	case len(m.VisibilityFlags) != n || len(m.LayerAlphas) != n:
		return fmt.Errorf("%w: %d layer files, %d visibility flags, %d opacities",
			ErrCorruptProject, n, len(m.VisibilityFlags), len(m.LayerAlphas))
	case len(m.LayerIDs) != 0 && len(m.LayerIDs) != n:
		return fmt.Errorf("%w: %d layer files, %d layer ids", ErrCorruptProject, n, len(m.LayerIDs))
	case m.ActiveLayerIndex < 0 || m.ActiveLayerIndex >= n:
		return fmt.Errorf("%w: active layer %d of %d", ErrCorruptProject, m.ActiveLayerIndex, n)
	}
	for _, name := range m.LayerFiles {
		if name == "" || filepath.Base(name) != name {
			return fmt.Errorf("%w: bad layer file name %q", ErrCorruptProject, name)
		}
	}
	return nil
}

// Load reads the project in dir. Either the whole project loads or an
// error wrapping ErrCorruptProject is returned.
func Load(dir string) (*layer.Stack, error) {
	meta, err := Inspect(dir)
	if err != nil {
		return nil, err
	}

	layers := make([]*layer.Layer, len(meta.LayerFiles))
	for i, name := range meta.LayerFiles {
		buf, err := readLayer(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: layer %s: %w", ErrCorruptProject, name, err)
		}
		if buf.Width() != meta.Width || buf.Height() != meta.Height {
			return nil, fmt.Errorf("%w: layer %s is %dx%d, canvas is %dx%d", ErrCorruptProject,
				name, buf.Width(), buf.Height(), meta.Width, meta.Height)
		}
		l := layer.New(buf)
		l.Visible = meta.VisibilityFlags[i]
		l.Opacity = uint8(min(max(meta.LayerAlphas[i], 0), 255))
		if len(meta.LayerIDs) > 0 && meta.LayerIDs[i] != "" {
			l.ID = meta.LayerIDs[i]
		}
		layers[i] = l
	}

	s, err := layer.Assemble(meta.Width, meta.Height, layers, meta.ActiveLayerIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptProject, err)
	}
	return s, nil
}

// ReadImage decodes any supported raster file (PNG, JPEG, GIF, BMP, TIFF,
// WebP) into a buffer.
func ReadImage(path string) (*pixel.Buffer, error) {
	return readLayer(path)
}

func readLayer(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(img), nil
}
