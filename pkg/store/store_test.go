package store

import (
	"context"
	"testing"

	"github.com/matzehuels/netplot/pkg/report"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()

	if err := s.SaveRun(ctx, report.Document{RunID: "r1", Input: "net"}); err != nil {
		t.Fatal(err)
	}

	_, ok, err := s.LatestRun(ctx, "net")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("null store must never return a run")
	}

	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}
}
