// Package report assembles per-node centrality results into a table.
//
// The three centrality maps are joined by node identity over the union of
// their key sets. A node missing from one map (which should not happen for
// a connected computation, but is handled) yields an explicitly empty cell
// rather than being dropped. Rows are sorted by node name so output is
// deterministic and batch runs are byte-for-byte reproducible.
package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/matzehuels/netplot/pkg/errors"
)

// Header columns of the result table.
var Header = []string{"Name", "Degree", "Eigenvector", "Betweenness"}

// Row is one per-node result record. The Has* flags distinguish a true
// zero score from a missing one.
type Row struct {
	Name        string  `json:"name" bson:"name"`
	Degree      int     `json:"degree" bson:"degree"`
	Eigenvector float64 `json:"eigenvector" bson:"eigenvector"`
	Betweenness float64 `json:"betweenness" bson:"betweenness"`

	HasDegree      bool `json:"-" bson:"-"`
	HasEigenvector bool `json:"-" bson:"-"`
	HasBetweenness bool `json:"-" bson:"-"`
}

// Table is the assembled result set for one input file.
type Table struct {
	Rows []Row `json:"rows" bson:"rows"`
}

// Document is the shape stored by the optional result store: one batch
// run's table for one input, tagged with a run ID.
type Document struct {
	RunID     string    `json:"run_id" bson:"run_id"`
	Input     string    `json:"input" bson:"input"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Rows      []Row     `json:"rows" bson:"rows"`
}

// Assemble joins the three centrality maps into a table over the union of
// their key sets, sorted by node name.
func Assemble(degree map[string]int, eigenvector, betweenness map[string]float64) Table {
	names := make(map[string]struct{}, len(degree))
	for k := range degree {
		names[k] = struct{}{}
	}
	for k := range eigenvector {
		names[k] = struct{}{}
	}
	for k := range betweenness {
		names[k] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for k := range names {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)

	rows := make([]Row, 0, len(sorted))
	for _, name := range sorted {
		row := Row{Name: name}
		if d, ok := degree[name]; ok {
			row.Degree = d
			row.HasDegree = true
		}
		if ev, ok := eigenvector[name]; ok {
			row.Eigenvector = ev
			row.HasEigenvector = true
		}
		if bc, ok := betweenness[name]; ok {
			row.Betweenness = bc
			row.HasBetweenness = true
		}
		rows = append(rows, row)
	}

	return Table{Rows: rows}
}

// MarshalCSV renders the table as comma-separated bytes with a header row.
// Missing scores are written as empty cells.
func (t Table) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write header")
	}
	for _, row := range t.Rows {
		record := []string{row.Name, "", "", ""}
		if row.HasDegree {
			record[1] = strconv.Itoa(row.Degree)
		}
		if row.HasEigenvector {
			record[2] = strconv.FormatFloat(row.Eigenvector, 'g', -1, 64)
		}
		if row.HasBetweenness {
			record[3] = strconv.FormatFloat(row.Betweenness, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write row %s", row.Name)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "flush table")
	}
	return buf.Bytes(), nil
}

// WriteFile writes the table as CSV to path.
func (t Table) WriteFile(path string) error {
	data, err := t.MarshalCSV()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
