package pg

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// openForTest opens a pool named appName against dsn and closes it on cleanup
func openForTest(t *testing.T, dsn, appName string) *PG {
	t.Helper()
	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 2}, nil, func(pc *pgxpool.Config) {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = appName
		pc.MinConns = 1
	})
	if err != nil {
		t.Fatalf("Open err = %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

// session pins one pooled connection for temp tables; released on cleanup
func session(ctx context.Context, t *testing.T, p *PG) *pgxpool.Conn {
	t.Helper()
	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire err = %v", err)
	}
	t.Cleanup(conn.Release)
	return conn
}
