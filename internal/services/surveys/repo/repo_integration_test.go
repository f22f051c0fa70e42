//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"surveyflow/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "surveys",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/surveys?sslmode=disable", host, port.Port())
}

func TestRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "surveyflow-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, SlowQueryMs: 500},
	}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	r := NewPG().Bind(st.PG)
	for range 2 {
		if err := r.EnsureSchema(ctx); err != nil {
			t.Fatalf("EnsureSchema: %v", err)
		}
	}
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	e := event()
	if err := r.Upsert(ctx, e, "enc-1"); err != nil {
		t.Fatalf("Upsert 1: %v", err)
	}
	e.NpsScore = 3
	e.Satisfaction = "sad"
	e.CustomFields = nil
	if err := r.Upsert(ctx, e, "enc-2"); err != nil {
		t.Fatalf("Upsert 2: %v", err)
	}

	got, err := r.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1", len(got))
	}
	rec := got[0]
	if rec.NpsScore != 3 || rec.Satisfaction != "sad" || rec.EncryptedIP != "enc-2" || rec.CustomFields != nil {
		t.Fatalf("record = %+v, want second write", rec)
	}
	if !rec.UpdatedAt.After(rec.CreatedAt) && !rec.UpdatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("updated_at %v before created_at %v", rec.UpdatedAt, rec.CreatedAt)
	}
	if !rec.SubmittedAt.Equal(e.SubmittedAt) {
		t.Fatalf("submitted_at = %v, want %v", rec.SubmittedAt, e.SubmittedAt)
	}
	// a different spelling of the same client overwrites the same row
	upper := e
	upper.ClientID = "ACME"
	upper.NpsScore = 10
	if err := r.Upsert(ctx, upper, ""); err != nil {
		t.Fatalf("Upsert upper: %v", err)
	}
	got, err = r.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 || got[0].NpsScore != 10 || got[0].ClientID != e.ClientID {
		t.Fatalf("rows = %+v, want one row with nps 10 and client id %q", got, e.ClientID)
	}
}
