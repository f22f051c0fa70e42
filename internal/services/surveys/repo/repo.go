// Package repo provides postgres access for survey responses
package repo

import (
	"context"
	_ "embed"
	"time"

	"surveyflow/internal/core/normalize"
	"surveyflow/internal/modkit/repokit"
	perr "surveyflow/internal/platform/errors"
	"surveyflow/internal/platform/store"
	str "surveyflow/internal/platform/strings"
	"surveyflow/internal/services/surveys/domain"

	"github.com/google/uuid"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the durable survey response store
type Repo interface {
	domain.Repository
	EnsureSchema(ctx context.Context) error
}

// SchemaTimeouts bound the schema bootstrap transaction
var SchemaTimeouts = struct{ Statement, Lock time.Duration }{Statement: 30 * time.Second, Lock: 5 * time.Second}

type (
	// PG implements Repo on Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema creates the table and indexes when missing
func (r *queries) EnsureSchema(ctx context.Context) error {
	q := r.q
	if tx, ok := q.(repokit.TxRunner); ok {
		q = repokit.WithBeginHooks(tx, repokit.LocalTimeouts(SchemaTimeouts.Statement, SchemaTimeouts.Lock))
	}
	err := repokit.WithTx(ctx, q, func(q repokit.Queryer) error {
		_, err := q.Exec(ctx, schemaSQL)
		return err
	})
	return perr.FromPostgres(err, "ensure survey schema")
}

// Upsert inserts the response or overwrites the mutable fields of the existing row.
// Rows are keyed by the folded client id, so client_id keeps the first spelling seen
func (r *queries) Upsert(ctx context.Context, e domain.Event, encryptedIP string) error {
	const sql = `
insert into survey_responses (
	id, survey_id, client_id, response_id, nps_score, satisfaction, custom_fields,
	submitted_at, user_agent, encrypted_ip, client_key, created_at, updated_at
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
on conflict (client_key, response_id) do update set
	survey_id     = excluded.survey_id,
	nps_score     = excluded.nps_score,
	satisfaction  = excluded.satisfaction,
	custom_fields = excluded.custom_fields,
	submitted_at  = excluded.submitted_at,
	user_agent    = excluded.user_agent,
	encrypted_ip  = excluded.encrypted_ip,
	updated_at    = now()
`
	var fields any
	if len(e.CustomFields) > 0 {
		fields = e.CustomFields
	}
	_, err := r.q.Exec(ctx, sql,
		uuid.New(),
		e.SurveyID,
		e.ClientID,
		e.ResponseID,
		e.NpsScore,
		e.Satisfaction,
		fields,
		e.SubmittedAt.UTC(),
		str.SQLNull(e.UserAgent),
		str.SQLNull(encryptedIP),
		normalize.Key(e.ClientID),
	)
	if err != nil {
		return perr.FromPostgres(err, "upsert survey response")
	}
	return nil
}

// All returns every stored response, oldest first
func (r *queries) All(ctx context.Context) ([]domain.Record, error) {
	const sql = `
select id, survey_id, client_id, response_id, nps_score, satisfaction, custom_fields,
submitted_at, user_agent, encrypted_ip, created_at, updated_at
from survey_responses
order by created_at, client_id, response_id
`
	out, err := store.Many(ctx, r.q, scanRecord, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list survey responses")
	}
	return out, nil
}

// Ping checks the database round trip
func (r *queries) Ping(ctx context.Context) error {
	if p, ok := r.q.(store.Pinger); ok {
		return perr.FromPostgres(p.Ping(ctx), "ping")
	}
	_, err := store.Scalar[int](ctx, r.q, `select 1`)
	return perr.FromPostgres(err, "ping")
}

func scanRecord(row store.Row) (domain.Record, error) {
	var (
		rec       domain.Record
		userAgent *string
		encIP     *string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.SurveyID,
		&rec.ClientID,
		&rec.ResponseID,
		&rec.NpsScore,
		&rec.Satisfaction,
		&rec.CustomFields,
		&rec.SubmittedAt,
		&userAgent,
		&encIP,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return domain.Record{}, err
	}
	if userAgent != nil {
		rec.UserAgent = *userAgent
	}
	if encIP != nil {
		rec.EncryptedIP = *encIP
	}
	rec.SubmittedAt = rec.SubmittedAt.UTC()
	return rec, nil
}
