// Package edgelist reads tab-separated weighted edge lists.
//
// The expected input is a header row with the case-sensitive columns
// Source, Target, and Weight (extra columns are ignored), followed by one
// row per edge. Files conventionally carry a .csv suffix even though the
// content is tab-separated; the naming is historical.
package edgelist

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
)

// Required header columns, case-sensitive.
const (
	ColSource = "Source"
	ColTarget = "Target"
	ColWeight = "Weight"
)

// Record is one (source, target, weight) row of an edge list.
type Record struct {
	Source string
	Target string
	Weight float64
}

// Read parses a tab-separated edge list from r.
//
// Returns a SCHEMA_ERROR if a required column is missing from the header
// or a row does not match the header shape, and a DATA_TYPE_ERROR if a
// weight cell is not numeric.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeSchema, "empty input: missing header row")
	}
	if err != nil {
		return nil, wrapReadError(err, "read header")
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{ColSource, ColTarget, ColWeight} {
		if _, ok := idx[col]; !ok {
			return nil, errors.New(errors.ErrCodeSchema, "missing required column %q", col)
		}
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err, "read row %d", line+1)
		}
		line++

		weightCell := strings.TrimSpace(row[idx[ColWeight]])
		weight, err := strconv.ParseFloat(weightCell, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeDataType, "row %d: weight %q is not numeric", line, weightCell)
		}

		records = append(records, Record{
			Source: row[idx[ColSource]],
			Target: row[idx[ColTarget]],
			Weight: weight,
		})
	}

	return records, nil
}

// wrapReadError classifies a csv.Reader error. Parse errors, notably a
// row with the wrong number of fields, are malformed input rather than
// an I/O failure.
func wrapReadError(err error, format string, args ...any) error {
	var perr *csv.ParseError
	if stderrors.As(err, &perr) {
		return errors.Wrap(errors.ErrCodeSchema, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeIO, err, format, args...)
}

// ReadFile parses the edge list at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Build constructs an undirected weighted graph from edge records.
// Duplicate unordered pairs merge per [graph.Graph.AddEdge] (weights sum).
func Build(records []Record) *graph.Graph {
	g := graph.New()
	for _, rec := range records {
		g.AddEdge(rec.Source, rec.Target, rec.Weight)
	}
	return g
}

// BaseName returns the input's file name stripped of directories and
// extension, used to derive output file names.
func BaseName(path string) string {
	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
