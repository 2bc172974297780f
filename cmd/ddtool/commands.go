package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/ha1tch/deluxepaint/internal/canvas"
	"github.com/ha1tch/deluxepaint/internal/config"
	"github.com/ha1tch/deluxepaint/internal/logger"
	"github.com/ha1tch/deluxepaint/internal/project"
)

var stdout io.Writer = os.Stdout

// openSession loads dir into a session configured from cfg.
func openSession(ctx context.Context, cfg *config.Config, dir string) (*canvas.Session, error) {
	opts := append(cfg.SessionOptions(), canvas.WithLogger(logger.L(ctx)))
	s := canvas.NewSession(1, 1, opts...)
	if err := s.LoadProject(dir); err != nil {
		return nil, err
	}
	return s, nil
}

func runInfo(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	meta, err := project.Inspect(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "project  %s\n", args[0])
	fmt.Fprintf(stdout, "version  %d\n", meta.Version)
	fmt.Fprintf(stdout, "size     %dx%d\n", meta.Width, meta.Height)
	fmt.Fprintf(stdout, "modified %s\n", meta.Modified.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(stdout, "active   %d\n\n", meta.ActiveLayerIndex)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFILE\tVISIBLE\tOPACITY\tID")
	for i, f := range meta.LayerFiles {
		id := ""
		if len(meta.LayerIDs) > i {
			id = meta.LayerIDs[i]
		}
		fmt.Fprintf(tw, "%d\t%s\t%t\t%d\t%s\n", i, f, meta.VisibilityFlags[i], meta.LayerAlphas[i], id)
	}
	return tw.Flush()
}

func runExport(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	s, err := openSession(ctx, cfg, args[0])
	if err != nil {
		return err
	}
	return s.Export(args[1])
}

func runThumbs(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("thumbs", flag.ContinueOnError)
	size := fs.Int("max", 100, "maximum thumbnail width and height")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 || *size <= 0 {
		return errUsage
	}
	s, err := openSession(ctx, cfg, fs.Arg(0))
	if err != nil {
		return err
	}
	out := fs.Arg(1)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	for i := 0; i < s.LayerCount(); i++ {
		thumb, _ := s.Thumbnail(i, *size, *size)
		path := filepath.Join(out, fmt.Sprintf("thumb_%d.png", i))
		if err := writePNG(path, thumb.RGBA()); err != nil {
			return err
		}
		logger.L(ctx).Debug("thumbnail", zap.String("path", path),
			zap.Int("width", thumb.Width()), zap.Int("height", thumb.Height()))
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runNew(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	w := fs.Int("w", cfg.Canvas.Width, "canvas width")
	h := fs.Int("h", cfg.Canvas.Height, "canvas height")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *w <= 0 || *h <= 0 {
		return errUsage
	}
	if _, err := os.Stat(filepath.Join(fs.Arg(0), project.MetadataFile)); err == nil {
		return fmt.Errorf("%s already holds a project", fs.Arg(0))
	}
	opts := append(cfg.SessionOptions(), canvas.WithLogger(logger.L(ctx)))
	return canvas.NewSession(*w, *h, opts...).SaveProject(fs.Arg(0))
}

func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	buf, err := project.ReadImage(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	s, err := openSession(ctx, cfg, args[1])
	if err != nil {
		return err
	}
	s.ImportImage(buf.RGBA())
	return s.SaveProject(args[1])
}

func runPack(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := project.Archive(args[0], args[1]); err != nil {
		return err
	}
	logger.L(ctx).Info("packed", zap.String("project", args[0]), zap.String("archive", args[1]))
	return nil
}

func runUnpack(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if err := project.Extract(args[0], args[1]); err != nil {
		return err
	}
	logger.L(ctx).Info("unpacked", zap.String("archive", args[0]), zap.String("project", args[1]))
	return nil
}
