package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/algoviz/algoviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats: "svg", "json", "png", "pdf", "dot"
	frame      int      // frame index to render
	all        bool     // render every frame instead of one
	module     string   // override the session's module tag
	scale      float64  // raster scale factor for PNG
	background string   // canvas background color
	noCache    bool     // disable the artifact cache
	refresh    bool     // re-render even when artifacts are cached
}

// renderCommand creates the render command for generating frame artifacts.
//
// Default settings:
//   - format: svg (or the config file's render.format)
//   - frame: 0
//   - scale: 2.0 (PNG only)
//   - background: #ffffff
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		scale:      pipeline.DefaultScale,
		background: pipeline.DefaultBackground,
	}
	if c.Config.Render.Scale > 0 {
		opts.scale = c.Config.Render.Scale
	}
	if c.Config.Render.Background != "" {
		opts.background = c.Config.Render.Background
	}

	cmd := &cobra.Command{
		Use:   "render [session.json]",
		Short: "Render session frames to SVG, JSON, PNG, PDF, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr == "" {
				formatsStr = c.Config.Render.Format
			}
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().IntVar(&opts.frame, "frame", 0, "frame index to render")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every frame in the session")
	cmd.Flags().StringVar(&opts.module, "module", "", "override the session's module tag")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "raster scale factor (png)")
	cmd.Flags().StringVar(&opts.background, "background", opts.background, "canvas background color")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when artifacts are cached")

	return cmd
}

// runRender executes the pipeline for one frame or all frames and writes
// the resulting artifacts to disk.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if !opts.all {
		return c.renderSingle(ctx, runner, input, opts)
	}

	pipeOpts := pipeline.Options{
		Input:      input,
		Module:     opts.module,
		Refresh:    opts.refresh,
		Formats:    opts.formats,
		Scale:      opts.scale,
		Background: opts.background,
		Logger:     logger,
	}

	s, err := runner.Decode(ctx, pipeOpts)
	if err != nil {
		return err
	}
	logger.Infof("Loaded session: %d frames, module %q", len(s.Frames), s.Module)

	module := opts.module
	if module == "" {
		module = s.Module
	}
	base := basePath(opts.output, input)

	prog := newProgress(logger)
	for i := range s.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := pipeline.SelectFrame(s, i)
		if err != nil {
			return err
		}
		sc := runner.Compose(ctx, f, module)
		artifacts, _, err := runner.RenderWithCacheInfo(ctx, f, sc, module, pipeOpts)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		for _, format := range opts.formats {
			path := outputPath(base, format, i, true)
			if err := writeArtifact(path, artifacts[format]); err != nil {
				return err
			}
			logger.Debugf("Generated %s", path)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d frames", len(s.Frames)))
	return nil
}

// renderSingle renders one frame in all requested formats.
func (c *CLI) renderSingle(ctx context.Context, runner *pipeline.Runner, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering frame %d", opts.frame))
	sp.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Input:      input,
		Module:     opts.module,
		Refresh:    opts.refresh,
		FrameIndex: opts.frame,
		Formats:    opts.formats,
		Scale:      opts.scale,
		Background: opts.background,
		Logger:     logger,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := outputPath(base, format, opts.frame, false)
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
	}

	printStats(result.Stats.FrameCount, result.Stats.GroupCount, result.CacheInfo.RenderHit)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath builds the artifact file name. Single-frame single-format runs
// write base.format; multi-frame runs insert a zero-padded frame number.
func outputPath(base, format string, index int, multiFrame bool) string {
	if multiFrame {
		return fmt.Sprintf("%s_%03d.%s", base, index, format)
	}
	return fmt.Sprintf("%s.%s", base, format)
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
