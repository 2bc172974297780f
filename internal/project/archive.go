package project

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ArchiveExt is the extension of single-file project archives.
const ArchiveExt = ".ddd"

// Archive packs the project in dir into a zip file at dst. The project is
// validated first so a broken directory is never archived.
func Archive(dir, dst string) error {
	meta, err := Inspect(dir)
	if err != nil {
		return err
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	zw := zip.NewWriter(f)
	for _, name := range append([]string{MetadataFile}, meta.LayerFiles...) {
		if err := addFile(zw, filepath.Join(dir, name), name); err != nil {
			zw.Close()
			f.Close()
			os.Remove(dst)
			return err
		}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write archive: %w", err)
	}
	return f.Close()
}

func addFile(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	// Layer PNGs are already deflated.
	method := zip.Store
	if name == MetadataFile {
		method = zip.Deflate
	}
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// Extract unpacks an archive written by Archive into dir and verifies the
// result loads. Entries outside the project layout are skipped.
func Extract(src, dir string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: open archive: %w", ErrCorruptProject, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	for _, zf := range zr.File {
		if zf.Name != MetadataFile && !layerFilePattern.MatchString(zf.Name) {
			continue
		}
		if err := extractFile(zf, filepath.Join(dir, zf.Name)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCorruptProject, zf.Name, err)
		}
	}
	_, err = Load(dir)
	return err
}

func extractFile(zf *zip.File, path string) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
