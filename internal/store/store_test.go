package store

import (
	"path/filepath"
	"testing"
	"time"

	"PMFSimulator/internal/model"
)

func TestSQLiteStore_RecordAndRecentRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	p := model.Default()
	rec := &RunRecord{
		ID:             "run-1",
		CreatedAt:      time.Unix(1700000000, 0),
		Params:         p,
		NumSimulations: 1000,
		Seed:           42,
		NetTvpiP50:     2.1,
		GrossTvpiP50:   2.6,
		IrrNetP50:      0.18,
		ProbReturnFund: 0.7,
		Prob2x:         0.5,
		Prob3x:         0.2,
	}
	if err := s.RecordRun(rec); err != nil {
		t.Fatalf("record run: %v", err)
	}

	runs, err := s.RecentRuns(10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != rec.ID {
		t.Errorf("id = %q, want %q", got.ID, rec.ID)
	}
	if got.NumSimulations != rec.NumSimulations {
		t.Errorf("numSimulations = %d, want %d", got.NumSimulations, rec.NumSimulations)
	}
	if got.Params.FundSize != p.FundSize {
		t.Errorf("fundSize = %v, want %v", got.Params.FundSize, p.FundSize)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestSQLiteStore_RecentRunsOrderedNewestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	p := model.Default()
	base := time.Unix(1700000000, 0)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		rec := FromResults(id, int64(i), base.Add(time.Duration(i)*time.Hour), model.MonteCarloResults{Params: p})
		if err := s.RecordRun(rec); err != nil {
			t.Fatalf("record run %s: %v", id, err)
		}
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit=2 to cap results, got %d", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("expected newest-first order [run-c run-b], got [%s %s]", runs[0].ID, runs[1].ID)
	}
}

func TestNoopStore_NeverErrors(t *testing.T) {
	n := NewNoopStore()
	if err := n.RecordRun(&RunRecord{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	runs, err := n.RecentRuns(5)
	if err != nil || runs != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", runs, err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
