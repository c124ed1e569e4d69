package edgelist

import (
	"strings"
	"testing"

	"github.com/matzehuels/netplot/pkg/errors"
)

const sample = "Source\tTarget\tWeight\nA\tB\t1.0\nB\tC\t2.0\nA\tC\t1.5\n"

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	want := Record{Source: "B", Target: "C", Weight: 2.0}
	if records[1] != want {
		t.Errorf("records[1] = %+v, want %+v", records[1], want)
	}
}

func TestReadExtraColumns(t *testing.T) {
	input := "Id\tSource\tTarget\tWeight\n1\tA\tB\t0.5\n"
	records, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 1 || records[0].Weight != 0.5 {
		t.Errorf("records = %+v", records)
	}
}

func TestReadSchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"MissingWeight", "Source\tTarget\nA\tB\n"},
		{"LowercaseHeader", "source\ttarget\tweight\nA\tB\t1\n"},
		{"Empty", ""},
		{"TruncatedRow", "Source\tTarget\tWeight\nA\tB\t1\nC\tD\n"},
		{"ExtraField", "Source\tTarget\tWeight\nA\tB\t1\tleftover\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeSchema) {
				t.Errorf("err = %v, want SCHEMA_ERROR", err)
			}
		})
	}
}

func TestReadNonNumericWeight(t *testing.T) {
	input := "Source\tTarget\tWeight\nA\tB\theavy\n"
	_, err := Read(strings.NewReader(input))
	if !errors.Is(err, errors.ErrCodeDataType) {
		t.Errorf("err = %v, want DATA_TYPE_ERROR", err)
	}
}

func TestBuild(t *testing.T) {
	records, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	g := Build(records)

	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount = %d, want 3", got)
	}
	for _, id := range []string{"A", "B", "C"} {
		d, err := g.Degree(id)
		if err != nil {
			t.Fatal(err)
		}
		if d != 2 {
			t.Errorf("Degree(%s) = %d, want 2", id, d)
		}
	}
}

func TestBuildSumsDuplicates(t *testing.T) {
	g := Build([]Record{
		{Source: "A", Target: "B", Weight: 1},
		{Source: "B", Target: "A", Weight: 2},
	})
	w, ok := g.Weight("A", "B")
	if !ok || w != 3 {
		t.Errorf("Weight(A,B) = %v, %v; want 3, true", w, ok)
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/network.csv", "network"},
		{"network.csv", "network"},
		{"/abs/path/friends.tsv", "friends"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := BaseName(tt.path); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
