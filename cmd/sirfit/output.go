package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ja7ad/epidemic/pkg/render"
)

// fileOutputs are the optional --csv/--json/--html destinations.
type fileOutputs struct {
	csvPath  string
	jsonPath string
	htmlPath string
}

func (f *fileOutputs) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.csvPath, "csv", "", "also write the chart data to a CSV file")
	flags.StringVar(&f.jsonPath, "json", "", "also write the chart data to a JSON file")
	flags.StringVar(&f.htmlPath, "html", "", "also write an HTML chart")
}

// each calls fn for every requested destination. With suffix set, the
// suffix is inserted before the extension so several runs do not collide.
func (f *fileOutputs) each(suffix string, fn func(path string, r render.Renderer) error) error {
	for _, out := range []struct {
		path string
		r    render.Renderer
	}{
		{f.csvPath, render.CSV{}},
		{f.jsonPath, render.JSON{}},
		{f.htmlPath, render.HTML{}},
	} {
		if out.path == "" {
			continue
		}
		if err := fn(withSuffix(out.path, suffix), out.r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fileOutputs) trajectory(suffix string, t render.Trajectory) error {
	return f.each(suffix, func(path string, r render.Renderer) error {
		return writeFile(path, func(w io.Writer) error { return r.RenderTrajectory(w, t) })
	})
}

func (f *fileOutputs) histogram(suffix string, h render.Histogram) error {
	return f.each(suffix, func(path string, r render.Renderer) error {
		return writeFile(path, func(w io.Writer) error { return r.RenderHistogram(w, h) })
	})
}

func writeFile(path string, fn func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("wrote file", "path", path)
	return nil
}

// withSuffix turns ("out/run.csv", "vital") into "out/run-vital.csv".
func withSuffix(path, suffix string) string {
	if suffix == "" {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + slug(suffix) + ext
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, s)
}
