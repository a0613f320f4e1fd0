package history

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppend_ReadAfterWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	record := &model.AnalysisRecord{
		Text:       "Central bank raises rates",
		Prediction: "REAL",
		Confidence: 0.87,
		ModelUsed:  "PRIMARY",
	}
	if err := s.Append(ctx, record); err != nil {
		t.Fatalf("append: %v", err)
	}
	if record.ID == 0 {
		t.Error("append must assign an id")
	}
	if record.Timestamp.IsZero() {
		t.Error("append must assign a timestamp")
	}

	got, err := s.Recent(ctx, 1, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ID != record.ID || got[0].Text != record.Text || got[0].Confidence != 0.87 {
		t.Errorf("read-after-write mismatch: %+v vs %+v", got[0], record)
	}
}

func TestRecent_NewestFirstWithPagination(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		record := &model.AnalysisRecord{
			Text:       fmt.Sprintf("headline %d", i),
			Prediction: "FAKE",
			Confidence: 0.5,
		}
		if err := s.Append(ctx, record); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	page, err := s.Recent(ctx, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Text != "headline 5" || page[1].Text != "headline 4" {
		t.Errorf("first page wrong: %+v", page)
	}

	page, err = s.Recent(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].Text != "headline 3" {
		t.Errorf("second page wrong: %+v", page)
	}
}

func TestAppend_MonotonicIDsUnderConcurrency(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			record := &model.AnalysisRecord{Text: "x", Prediction: "REAL", Confidence: 0.5}
			if err := s.Append(ctx, record); err != nil {
				t.Errorf("append: %v", err)
				return
			}
			ids[idx] = record.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, id := range ids {
		if id == 0 || seen[id] {
			t.Fatalf("ids not unique and monotonic: %v", ids)
		}
		seen[id] = true
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Errorf("count = %d, want %d", count, n)
	}
}

func TestRecent_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(context.Background(), 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %+v", got)
	}
}
