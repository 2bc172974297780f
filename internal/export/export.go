// Package export writes the flattened canvas to image and document files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ha1tch/deluxepaint/internal/compose"
	"github.com/ha1tch/deluxepaint/internal/layer"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// JPEGQuality is the encoder quality used for .jpg exports.
const JPEGQuality = 95

// Background is painted under the composite for formats without alpha.
var Background = color.White

// Format identifies an export encoder.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Write encodes the composite of s to w.
func Write(w io.Writer, s *layer.Stack, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, compose.Compose(s).RGBA())
	case JPEG:
		return jpeg.Encode(w, compose.Flatten(s, Background).RGBA(), &jpeg.Options{Quality: JPEGQuality})
	case PDF:
		return writePDF(w, s)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// File exports s to path, choosing the encoder from the extension. A failed
// export removes the partial file.
func File(path string, s *layer.Stack) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := Write(out, s, f); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("export %s: %w", f, err)
	}
	return out.Close()
}

// writePDF places the flattened canvas on a single page the size of the
// canvas, one point per pixel.
func writePDF(w io.Writer, s *layer.Stack) error {
	var img bytes.Buffer
	if err := png.Encode(&img, compose.Flatten(s, Background).RGBA()); err != nil {
		return err
	}

	wd, ht := float64(s.Width()), float64(s.Height())
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opt, &img)
	pdf.ImageOptions("canvas", 0, 0, wd, ht, false, opt, 0, "")
	return pdf.Output(w)
}
