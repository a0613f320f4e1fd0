package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func TestFingerprint_Deterministic(t *testing.T) {
	const text = "Central bank raises rates"
	if Fingerprint(text) != Fingerprint(text) {
		t.Error("fingerprint must be deterministic")
	}
}

func TestFingerprint_NormalizesCaseAndWhitespace(t *testing.T) {
	base := Fingerprint("Central bank raises rates")
	variants := []string{
		"central BANK raises rates",
		"  Central   bank\traises\nrates  ",
		"CENTRAL BANK RAISES RATES",
	}
	for _, v := range variants {
		if Fingerprint(v) != base {
			t.Errorf("Fingerprint(%q) differs from the normalized base", v)
		}
	}
	if Fingerprint("central bank cuts rates") == base {
		t.Error("different content must not collide")
	}
}

func TestGetOrCompute_SingleFlight(t *testing.T) {
	c, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	var computations atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func(context.Context) (*model.AggregatedResult, error) {
		computations.Add(1)
		close(started)
		<-release
		return &model.AggregatedResult{Prediction: "FAKE", Confidence: 0.9}, nil
	}

	const n = 10
	results := make([]*model.AggregatedResult, n)
	var wg sync.WaitGroup
	key := Fingerprint("same input for everyone")

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			r, _, err := c.GetOrCompute(context.Background(), key, compute)
			if err != nil {
				t.Errorf("waiter %d: %v", idx, err)
				return
			}
			results[idx] = r
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	if got := computations.Load(); got != 1 {
		t.Errorf("expected exactly 1 computation, got %d", got)
	}
	for i, r := range results {
		if r == nil || r.Prediction != "FAKE" || r.Confidence != 0.9 {
			t.Errorf("waiter %d got a different result: %+v", i, r)
		}
	}
}

func TestGetOrCompute_ErrorNotCached(t *testing.T) {
	c, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	key := Fingerprint("failing input")
	wantErr := errors.New("model unavailable")

	_, _, err = c.GetOrCompute(context.Background(), key, func(context.Context) (*model.AggregatedResult, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected compute error, got %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("a failed computation must not be cached")
	}

	// next call recomputes and may succeed
	r, hit, err := c.GetOrCompute(context.Background(), key, func(context.Context) (*model.AggregatedResult, error) {
		return &model.AggregatedResult{Prediction: "REAL"}, nil
	})
	if err != nil || hit || r.Prediction != "REAL" {
		t.Errorf("recompute after failure broken: r=%+v hit=%v err=%v", r, hit, err)
	}
}

func TestGetOrCompute_HitSkipsCompute(t *testing.T) {
	c, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	key := Fingerprint("cached input")
	first, hit, err := c.GetOrCompute(context.Background(), key, func(context.Context) (*model.AggregatedResult, error) {
		return &model.AggregatedResult{Prediction: "FAKE", Fingerprint: key}, nil
	})
	if err != nil || hit {
		t.Fatalf("first call should miss: hit=%v err=%v", hit, err)
	}

	second, hit, err := c.GetOrCompute(context.Background(), key, func(context.Context) (*model.AggregatedResult, error) {
		t.Error("compute must not run on a hit")
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !hit || !second.CacheHit {
		t.Error("second call should be a hit")
	}
	if second.Prediction != first.Prediction {
		t.Errorf("hit returned different content: %+v vs %+v", second, first)
	}
}

func TestResultCache_EvictsLRU(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		key := Fingerprint(fmt.Sprintf("item %d", i))
		_, _, err := c.GetOrCompute(context.Background(), key, func(context.Context) (*model.AggregatedResult, error) {
			return &model.AggregatedResult{Prediction: "REAL"}, nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if c.Len() != 2 {
		t.Errorf("capacity 2 cache holds %d entries", c.Len())
	}
	if _, ok := c.Get(Fingerprint("item 0")); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get(Fingerprint("item 2")); !ok {
		t.Error("newest entry should be present")
	}
}
