package metrics

import (
	"sync"
	"testing"
)

func TestTrack_AverageAndCount(t *testing.T) {
	a := New()
	a.Track("acme", 9)
	a.Track("acme", 7)

	got, ok := a.Get("acme")
	if !ok {
		t.Fatal("Get(acme) not found")
	}
	if got.Count != 2 || got.Average != 8.0 {
		t.Fatalf("Get(acme) = %+v, want count 2 avg 8", got)
	}
	if a.Tracked() != 2 {
		t.Fatalf("Tracked = %d, want 2", a.Tracked())
	}
}

func TestTrack_CaseInsensitiveFirstSeenDisplay(t *testing.T) {
	a := New()
	a.Track("Acme", 10)
	a.Track("ACME", 0)
	a.Track(" acme ", 5)

	snap := a.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("Snapshot len = %d, want 1", len(snap))
	}
	if snap[0].ClientID != "Acme" || snap[0].Count != 3 || snap[0].Average != 5 {
		t.Fatalf("Snapshot = %+v", snap[0])
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, ok := New().Get("nobody"); ok {
		t.Fatal("Get(unknown) ok = true")
	}
}

func TestSnapshot_EmptyAndSorted(t *testing.T) {
	a := New()
	if snap := a.Snapshot(); snap == nil || len(snap) != 0 {
		t.Fatalf("empty Snapshot = %v, want empty non-nil", snap)
	}
	a.Track("b", 1)
	a.Track("a", 2)
	a.Track("c", 3)
	snap := a.Snapshot()
	if snap[0].ClientID != "a" || snap[1].ClientID != "b" || snap[2].ClientID != "c" {
		t.Fatalf("Snapshot order = %+v", snap)
	}
}

func TestTrack_ConcurrentAverage(t *testing.T) {
	const workers, per = 16, 500
	a := New()
	var wg sync.WaitGroup
	var sum int64
	for w := 0; w < workers; w++ {
		score := w % 11
		sum += int64(score * per)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				a.Track("acme", score)
			}
		}()
	}
	wg.Wait()

	got, _ := a.Get("acme")
	n := int64(workers * per)
	if got.Count != n {
		t.Fatalf("Count = %d, want %d", got.Count, n)
	}
	if want := float64(sum) / float64(n); got.Average != want {
		t.Fatalf("Average = %v, want %v", got.Average, want)
	}
}

func TestSnapshot_NeverTorn(t *testing.T) {
	a := New()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				a.Track("acme", 10)
			}
		}
	}()

	// every tracked score is 10 so any consistent read averages exactly 10
	for i := 0; i < 2000; i++ {
		for _, c := range a.Snapshot() {
			if c.Count > 0 && c.Average != 10 {
				close(stop)
				wg.Wait()
				t.Fatalf("torn snapshot: %+v", c)
			}
		}
	}
	close(stop)
	wg.Wait()
}
