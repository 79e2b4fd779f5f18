package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/algoviz/algoviz/pkg/cache"
	"github.com/algoviz/algoviz/pkg/errors"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/observability"
	"github.com/algoviz/algoviz/pkg/render/dot"
	"github.com/algoviz/algoviz/pkg/render/scene"
	"github.com/algoviz/algoviz/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	s, err := r.Decode(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Session = s
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.FrameCount = len(s.Frames)

	r.Logger.Info("decoded session",
		"frames", len(s.Frames),
		"module", s.Module,
		"duration", result.Stats.DecodeTime)

	f, err := SelectFrame(s, opts.FrameIndex)
	if err != nil {
		return nil, err
	}

	// Stage 2: Compose
	composeStart := time.Now()
	module := opts.Module
	if module == "" {
		module = s.Module
	}
	sc := r.Compose(ctx, f, module)
	result.Scene = sc
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.GroupCount = len(sc.Groups)

	r.Logger.Info("composed scene",
		"groups", len(sc.Groups),
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, f, sc, module, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.FrameHash = FrameHash(f)
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode loads the session document named by opts.Input.
func (r *Runner) Decode(ctx context.Context, opts Options) (*frame.Session, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Input)

	s, err := frame.ReadSessionFile(opts.Input)

	frames := 0
	if s != nil {
		frames = len(s.Frames)
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Input, frames, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSession, err, "decode session %s", opts.Input)
	}
	return s, nil
}

// SelectFrame returns the frame at index, with range checking. Playback
// cursors clamp; direct API and CLI access reports out-of-range explicitly.
func SelectFrame(s *frame.Session, index int) (frame.Frame, error) {
	if len(s.Frames) == 0 {
		return frame.Frame{}, errors.New(errors.ErrCodeInvalidSession, "session has no frames")
	}
	if index < 0 || index >= len(s.Frames) {
		return frame.Frame{}, errors.New(errors.ErrCodeInvalidIndex,
			"frame index %d out of range [0, %d]", index, len(s.Frames)-1)
	}
	return s.Frames[index], nil
}

// Compose builds the scene for one frame. Composition never fails: malformed
// structures degrade to placeholders inside the scene.
func (r *Runner) Compose(ctx context.Context, f frame.Frame, module string) *scene.Scene {
	start := time.Now()
	observability.Pipeline().OnComposeStart(ctx, module, f.FrameID)
	sc := scene.Compose(f, module)
	observability.Pipeline().OnComposeComplete(ctx, module, f.FrameID, len(sc.Groups), time.Since(start), nil)
	return sc
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Cache keys derive from the frame's content hash, never its index, so
// identical frames share artifacts across sessions.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f frame.Frame, sc *scene.Scene, module string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	frameHash := FrameHash(f)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.FrameKey(frameHash, r.frameKeyOpts(module, format, opts))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil // All artifacts from cache
		}
	}

	// Render all formats
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := r.renderFormats(f, sc, module, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.FrameKey(frameHash, r.frameKeyOpts(module, format, opts))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, f frame.Frame, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, sc, opts.Module, opts)
	return artifacts, err
}

func (r *Runner) renderFormats(f frame.Frame, sc *scene.Scene, module string, opts Options) (map[string][]byte, error) {
	svgOpts := []sink.SVGOption{sink.WithBackground(opts.Background)}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(sc, svgOpts...)
		case FormatJSON:
			data, err := sink.RenderJSON(sc,
				sink.WithJSONFrameID(f.FrameID),
				sink.WithJSONModule(module))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := sink.RenderPNG(sc,
				sink.WithPNGSVGOptions(svgOpts...),
				sink.WithScale(opts.Scale))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			artifacts[format] = data
		case FormatPDF:
			data, err := sink.RenderPDF(sc, sink.WithPDFSVGOptions(svgOpts...))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
			}
			artifacts[format] = data
		case FormatDOT:
			data, err := renderDOT(f)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return artifacts, nil
}

// renderDOT exports the frame's first graph (or tree) as Graphviz DOT. The
// other structure kinds have no meaningful node-link form.
func renderDOT(f frame.Frame) ([]byte, error) {
	if len(f.Graphs) > 0 {
		return []byte(dot.GraphDOT(f.Graphs[0])), nil
	}
	if len(f.Trees) > 0 {
		return []byte(dot.TreeDOT(f.Trees[0])), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "dot output requires a graph or tree structure")
}

// FrameHash computes the content hash of a frame's canonical JSON.
func FrameHash(f frame.Frame) string {
	data, _ := json.Marshal(f)
	return cache.Hash(data)
}

func (r *Runner) frameKeyOpts(module, format string, opts Options) cache.FrameKeyOpts {
	scale := 0.0
	if format == FormatPNG {
		scale = opts.Scale
	}
	background := ""
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		background = opts.Background
	}
	return cache.FrameKeyOpts{
		Module:     module,
		Format:     format,
		Scale:      scale,
		Background: background,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
