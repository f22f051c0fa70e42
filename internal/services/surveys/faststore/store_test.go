package faststore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"surveyflow/internal/services/surveys/domain"
)

func rec(client, response, sat string, score int) domain.FastRecord {
	return domain.FastRecord{ClientID: client, ResponseID: response, Satisfaction: sat, NpsScore: score}
}

func TestUpsert_LastWriteWins(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Upsert(ctx, rec("A", "r1", "sad", 3))
	_ = s.Upsert(ctx, rec("A", "r1", "happy", 9))

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All = %v", err)
	}
	if len(all) != 1 || s.Len() != 1 {
		t.Fatalf("records = %d, Len = %d, want 1", len(all), s.Len())
	}
	if all[0].Satisfaction != "happy" || all[0].NpsScore != 9 {
		t.Fatalf("record = %+v, want the second write", all[0])
	}
}

func TestUpsert_ClientCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	_ = s.Upsert(ctx, rec("Acme", "r1", "sad", 3))
	_ = s.Upsert(ctx, rec("ACME", "r1", "happy", 9))
	_ = s.Upsert(ctx, rec("acme", "r2", "ok", 7))

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got, err := s.ByClient(ctx, " aCmE ")
	if err != nil {
		t.Fatalf("ByClient = %v", err)
	}
	if len(got) != 2 || got[0].ResponseID != "r1" || got[1].ResponseID != "r2" {
		t.Fatalf("ByClient = %+v", got)
	}
	if got[0].ClientID != "ACME" {
		t.Fatalf("ClientID = %q, want last written display id ACME", got[0].ClientID)
	}
}

func TestAll_SortedAndFiltered(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Upsert(ctx, rec("B", "r1", "sad", 1))
	_ = s.Upsert(ctx, rec("A", "r2", "happy", 9))
	_ = s.Upsert(ctx, rec("A", "r1", "happy", 9))

	all, _ := s.All(ctx)
	want := []string{"A/r1", "A/r2", "B/r1"}
	for i, r := range all {
		if got := r.ClientID + "/" + r.ResponseID; got != want[i] {
			t.Fatalf("All[%d] = %s, want %s", i, got, want[i])
		}
	}

	none, err := s.ByClient(ctx, "C")
	if err != nil || len(none) != 0 || none == nil {
		t.Fatalf("ByClient(unknown) = %v, %v, want empty non-nil", none, err)
	}
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Upsert(ctx, rec("A", "r1", "x", 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Upsert = %v, want canceled", err)
	}
	if _, err := s.All(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("All = %v, want canceled", err)
	}
	if _, err := s.ByClient(ctx, "A"); !errors.Is(err, context.Canceled) {
		t.Fatalf("ByClient = %v, want canceled", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len = %d after canceled upsert", s.Len())
	}
}

func TestConcurrentUpserts(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				// half the writes collide on the same pairs
				_ = s.Upsert(ctx, rec("A", fmt.Sprintf("r%d", i%50), "happy", w))
				_, _ = s.All(ctx)
			}
		}(w)
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Fatalf("Len = %d, want 50", s.Len())
	}
}
