package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplot/pkg/cache"
	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/layout"
)

const sampleEdgelist = "Source\tTarget\tWeight\nA\tB\t1\nB\tC\t2\nA\tC\t3\n"

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(sampleEdgelist), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"pdf", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "net.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if opts.Layout != "spring" {
		t.Errorf("Layout = %q, want spring", opts.Layout)
	}
	if opts.Format != "png" {
		t.Errorf("Format = %q, want png", opts.Format)
	}
	if opts.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", opts.OutputDir)
	}
	if opts.Seed != 42 {
		t.Errorf("Seed = %d, want 42", opts.Seed)
	}
	if opts.Jobs != 1 {
		t.Errorf("Jobs = %d, want 1", opts.Jobs)
	}
}

func TestOptionsSeed(t *testing.T) {
	// Zero is the documented "unset" sentinel and selects the default.
	opts := Options{Input: "net.csv", Seed: 0}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Seed != layout.DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, layout.DefaultSeed)
	}

	opts = Options{Input: "net.csv", Seed: -7}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Seed != -7 {
		t.Errorf("Seed = %d, want -7", opts.Seed)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing input", Options{}},
		{"unknown layout", Options{Input: "net.csv", Layout: "orbital"}},
		{"unknown format", Options{Input: "net.csv", Format: "gif"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptionsUnknownLayoutCode(t *testing.T) {
	opts := Options{Input: "net.csv", Layout: "orbital"}
	err := opts.ValidateAndSetDefaults()
	if !errors.Is(err, errors.ErrCodeUnknownLayout) {
		t.Errorf("err = %v, want UNKNOWN_LAYOUT", err)
	}
}

func TestArtifactPaths(t *testing.T) {
	opts := Options{
		Input:        "data/my.network.csv",
		Layout:       "circular",
		SizeByDegree: true,
		OutputDir:    "out",
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if got, want := opts.TablePath("my"), filepath.Join("out", "network_my.csv"); got != want {
		t.Errorf("TablePath = %q, want %q", got, want)
	}
	want := filepath.Join("out", "my_circular_size-true_width-false.png")
	if got := opts.ImagePath("my"); got != want {
		t.Errorf("ImagePath = %q, want %q", got, want)
	}
}

func TestExecuteAndWrite(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir, "friends.csv")

	r := NewRunner(nil, nil, nil, quiet())
	res, err := r.ExecuteAndWrite(context.Background(), Options{
		Input:         input,
		SizeByDegree:  true,
		WidthByWeight: true,
		OutputDir:     filepath.Join(dir, "output"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.RunID == "" {
		t.Error("expected a run ID")
	}
	if res.Name != "friends" {
		t.Errorf("Name = %q, want friends", res.Name)
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 {
		t.Errorf("got %d nodes / %d edges, want 3/3", res.Stats.NodeCount, res.Stats.EdgeCount)
	}

	table, err := os.ReadFile(res.TablePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(table), "Name,Degree,Eigenvector,Betweenness\n") {
		t.Errorf("unexpected table header:\n%s", table)
	}

	img, err := os.ReadFile(res.ImagePath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(img, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("image is not a PNG")
	}
	if filepath.Base(res.ImagePath) != "friends_spring_size-true_width-true.png" {
		t.Errorf("unexpected image name %q", filepath.Base(res.ImagePath))
	}
}

func TestExecuteCaching(t *testing.T) {
	dir := t.TempDir()
	input := writeSample(t, dir, "net.csv")

	c, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil, quiet())
	opts := Options{Input: input, OutputDir: filepath.Join(dir, "output")}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ComputeHit || first.CacheInfo.RenderHit {
		t.Error("first run must not hit the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ComputeHit {
		t.Error("second run should hit the compute cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the render cache")
	}
	if !bytes.Equal(first.TableCSV, second.TableCSV) {
		t.Error("cached run produced a different table")
	}

	// Refresh bypasses the cache.
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := r.Execute(context.Background(), refreshOpts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ComputeHit || third.CacheInfo.RenderHit {
		t.Error("refresh run must not hit the cache")
	}
}

func TestExecuteDirIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	inputs := filepath.Join(dir, "in")
	if err := os.MkdirAll(inputs, 0755); err != nil {
		t.Fatal(err)
	}
	writeSample(t, inputs, "good.csv")
	bad := filepath.Join(inputs, "bad.csv")
	if err := os.WriteFile(bad, []byte("From\tTo\nA\tB\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil, nil, nil, quiet())
	batch, err := r.ExecuteDir(context.Background(), inputs, Options{
		OutputDir: filepath.Join(dir, "output"),
		Jobs:      2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(batch.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(batch.Results))
	}
	if batch.Results[0].Name != "good" {
		t.Errorf("succeeded file = %q, want good", batch.Results[0].Name)
	}
	if len(batch.Failed) != 1 {
		t.Fatalf("got %d failures, want 1", len(batch.Failed))
	}
	if !errors.Is(batch.Failed[bad], errors.ErrCodeSchema) {
		t.Errorf("failure = %v, want SCHEMA_ERROR", batch.Failed[bad])
	}
}

func TestExecuteDirEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil, quiet())
	_, err := r.ExecuteDir(context.Background(), t.TempDir(), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
