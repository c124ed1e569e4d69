package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netplot/pkg/pipeline"
)

// analyzeCommand creates the analyze command, the main entry point of
// the tool.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "analyze [file or directory]",
		Short: "Analyze an edgelist and render the network",
		Long: `Analyze an undirected weighted edgelist.

The input is a tab-separated file with Source, Target, and Weight
columns, or a directory of such files (*.csv). For each input, analyze
writes a result table with degree, eigenvector, and betweenness
centrality per node, and an image of the network under the chosen
layout.

When the input is a directory, files are processed independently: a
malformed file is logged and skipped, never aborting the batch. Use
--jobs to process several files concurrently.

Results are cached by input content, so re-running over unchanged
files is fast. Use --refresh to force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.apply(&opts)
			opts.Input = args[0]
			opts.Logger = c.Logger
			return c.runAnalyze(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", "", "layout algorithm: spring (default), circular, kamada_kawai, random")
	cmd.Flags().BoolVar(&opts.SizeByDegree, "size", false, "scale node sizes by degree")
	cmd.Flags().BoolVar(&opts.WidthByWeight, "width", false, "scale edge widths by weight")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "image format: png (default), svg")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", "", "output directory (default output)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for seeded layouts; 0 means the default (42)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "number of files to process concurrently (default 1)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runAnalyze dispatches between single-file and directory mode.
func (c *CLI) runAnalyze(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close(ctx)

	if info.IsDir() {
		return c.analyzeDir(ctx, runner, input, opts)
	}
	return c.analyzeFile(ctx, runner, opts)
}

func (c *CLI) analyzeFile(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	spin := startSpinner(ctx, fmt.Sprintf("Analyzing %s...", opts.Input))

	result, err := runner.ExecuteAndWrite(ctx, opts)
	if err != nil {
		spin.fail("Analysis failed")
		return err
	}
	spin.stop()

	printOK("Analyzed %s", result.Name)
	printRun(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ComputeHit)
	printArtifact("table", result.TablePath)
	printArtifact("image", result.ImagePath)
	return nil
}

func (c *CLI) analyzeDir(ctx context.Context, runner *pipeline.Runner, dir string, opts pipeline.Options) error {
	track := newProgress(c.Logger)

	batch, err := runner.ExecuteDir(ctx, dir, opts)
	if err != nil {
		return err
	}
	track.done(fmt.Sprintf("Processed %d files", len(batch.Results)+len(batch.Failed)))

	for _, result := range batch.Results {
		printOK("Analyzed %s", result.Name)
		printArtifact("table", result.TablePath)
		printArtifact("image", result.ImagePath)
	}
	for path, ferr := range batch.Failed {
		printFail("%s: %v", path, ferr)
	}

	if len(batch.Failed) > 0 {
		printWarn("%d of %d files failed", len(batch.Failed), len(batch.Results)+len(batch.Failed))
	}
	return nil
}
