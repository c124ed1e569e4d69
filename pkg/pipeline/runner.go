package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/netplot/pkg/cache"
	"github.com/matzehuels/netplot/pkg/edgelist"
	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
	"github.com/matzehuels/netplot/pkg/layout"
	"github.com/matzehuels/netplot/pkg/render"
	"github.com/matzehuels/netplot/pkg/report"
	"github.com/matzehuels/netplot/pkg/store"
)

// Runner encapsulates pipeline execution with caching and optional
// result persistence. Both CLI and API use this to avoid duplicating
// the caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner. Nil collaborators get no-op defaults:
// NullCache, DefaultKeyer, NullStore, log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, s store.Store, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if s == nil {
		s = store.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Store: s, Logger: logger}
}

// Execute runs the complete load → build → compute → assemble → render
// pipeline for one input file. It produces the artifacts in memory; use
// ExecuteAndWrite to also place them in the output directory.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	result := &Result{
		RunID: uuid.NewString(),
		Name:  edgelist.BaseName(opts.Input),
	}

	// Stage 1: Load and build
	loadStart := time.Now()
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", opts.Input)
	}
	inputHash := cache.Hash(data)

	records, err := edgelist.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	g := edgelist.Build(records)
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	logger.Info("built graph",
		"input", result.Name,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Centrality (cached by input content)
	computeStart := time.Now()
	sc, computeHit, err := r.computeWithCacheInfo(ctx, g, inputHash, opts)
	if err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}
	result.Table = report.Assemble(sc.Degree, sc.Eigenvector, sc.Betweenness)
	result.TableCSV, err = result.Table.MarshalCSV()
	if err != nil {
		return nil, err
	}
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.ComputeHit = computeHit

	logger.Info("computed centrality",
		"input", result.Name,
		"rows", len(result.Table.Rows),
		"cached", computeHit,
		"duration", result.Stats.ComputeTime)

	// Stage 3: Layout
	layoutStart := time.Now()
	pos, err := layout.Compute(g, opts.Algorithm(), opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Stats.LayoutTime = time.Since(layoutStart)

	logger.Info("computed layout",
		"input", result.Name,
		"layout", opts.Layout,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render (cached by input content + options)
	renderStart := time.Now()
	img, renderHit, err := r.renderWithCacheInfo(ctx, g, pos, inputHash, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Image = img
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered image",
		"input", result.Name,
		"format", opts.Format,
		"bytes", len(img),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// computeWithCacheInfo derives centrality scores with caching and
// reports whether the cache was hit.
func (r *Runner) computeWithCacheInfo(ctx context.Context, g *graph.Graph, inputHash string, opts Options) (scores, bool, error) {
	key := r.Keyer.TableKey(inputHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var sc scores
			if err := json.Unmarshal(data, &sc); err == nil {
				return sc, true, nil
			}
			// Invalid cache entry - fall through to recompute
		}
	}

	sc, err := computeScores(g)
	if err != nil {
		return scores{}, false, err
	}

	if data, err := json.Marshal(sc); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLTable)
	}
	return sc, false, nil
}

// renderWithCacheInfo renders the image with caching and reports whether
// the cache was hit.
func (r *Runner) renderWithCacheInfo(ctx context.Context, g *graph.Graph, pos map[string]layout.Point, inputHash string, opts Options, logger *log.Logger) ([]byte, bool, error) {
	key := r.Keyer.ImageKey(inputHash, opts.ImageKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return data, true, nil
		}
	}

	ropts, err := scaleAttributes(g, opts, logger)
	if err != nil {
		return nil, false, err
	}

	var img []byte
	switch opts.Format {
	case "svg":
		img, err = render.RenderSVG(render.ToDOT(g, pos, ropts))
	default:
		img, err = render.RenderPNG(g, pos, ropts)
	}
	if err != nil {
		return nil, false, err
	}

	_ = r.Cache.Set(ctx, key, img, cache.TTLImage)
	return img, false, nil
}

// ExecuteAndWrite runs Execute, writes both artifacts to the output
// directory, and records the run in the store.
func (r *Runner) ExecuteAndWrite(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result, err := r.Execute(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output dir %s", opts.OutputDir)
	}

	tablePath := opts.TablePath(result.Name)
	if err := os.WriteFile(tablePath, result.TableCSV, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write %s", tablePath)
	}
	result.TablePath = tablePath

	imagePath := opts.ImagePath(result.Name)
	if err := os.WriteFile(imagePath, result.Image, 0644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write %s", imagePath)
	}
	result.ImagePath = imagePath

	doc := report.Document{
		RunID:     result.RunID,
		Input:     result.Name,
		CreatedAt: time.Now().UTC(),
		Rows:      result.Table.Rows,
	}
	if err := r.Store.SaveRun(ctx, doc); err != nil {
		// Persistence is best-effort: the artifacts on disk are the
		// primary output.
		logger.Warn("failed to record run", "input", result.Name, "err", err)
	}

	logger.Info("wrote artifacts", "table", tablePath, "image", imagePath)
	return result, nil
}

// BatchResult summarizes a directory run.
type BatchResult struct {
	Results []*Result
	Failed  map[string]error
}

// ExecuteDir runs the pipeline for every *.csv file in dir, up to
// opts.Jobs files concurrently. A failing file is logged and skipped;
// it never aborts the rest of the batch.
func (r *Runner) ExecuteDir(ctx context.Context, dir string, opts Options) (*BatchResult, error) {
	if opts.Input == "" {
		opts.Input = dir // satisfy validation; replaced per file below
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list %s", dir)
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no *.csv files in %s", dir)
	}
	sort.Strings(paths)

	batch := &BatchResult{Failed: make(map[string]error)}
	results := make([]*Result, len(paths))

	var mu sync.Mutex
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Jobs)
	for i, path := range paths {
		eg.Go(func() error {
			fileOpts := opts
			fileOpts.Input = path
			res, err := r.ExecuteAndWrite(egctx, fileOpts)
			if err != nil {
				logger.Error("file failed, continuing batch",
					"input", path,
					"code", errors.GetCode(err),
					"err", err)
				mu.Lock()
				batch.Failed[path] = err
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, res := range results {
		if res != nil {
			batch.Results = append(batch.Results, res)
		}
	}
	logger.Info("batch complete",
		"dir", dir,
		"succeeded", len(batch.Results),
		"failed", len(batch.Failed))
	return batch, nil
}

// Close releases resources held by the runner.
func (r *Runner) Close(ctx context.Context) error {
	if err := r.Cache.Close(); err != nil {
		return err
	}
	return r.Store.Close(ctx)
}

// logger picks the per-run logger when set, the runner's otherwise.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
