package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"surveyflow/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("Open(bad url) err = nil, want parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@db:5432/surveys?sslmode=disable"}, nil, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("Open err = %v, want boom", err)
	}
}

func TestOpen_AppliesConfigAndMutator(t *testing.T) {
	testkit.Serial(t)

	// zero pool, never closed
	fake := &pgxpool.Pool{}
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})

	cfg := Config{URL: "postgres://u:p@db:5432/surveys?sslmode=disable", MaxConns: 7, SlowMs: 250}
	p, err := Open(context.Background(), cfg, nil, func(pc *pgxpool.Config) {
		pc.MaxConnIdleTime = 42 * time.Second
	})
	if err != nil {
		t.Fatalf("Open err = %v", err)
	}
	if seen.MaxConns != 7 || seen.MaxConnIdleTime != 42*time.Second {
		t.Fatalf("pool config = MaxConns %d idle %v", seen.MaxConns, seen.MaxConnIdleTime)
	}
	if p.Pool != fake || p.SlowMs != 250 {
		t.Fatalf("PG = %+v", p)
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
