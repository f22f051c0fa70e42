// Package faststore keeps the latest FastRecord per client and response in memory
package faststore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"surveyflow/internal/core/normalize"
	"surveyflow/internal/services/surveys/domain"
)

type key struct {
	client   string
	response string
}

// Store is a concurrent last-write-wins map of FastRecords.
// Client ids are matched case-insensitively; returned CustomFields are shared and must not be mutated
type Store struct {
	m   sync.Map // key -> domain.FastRecord
	len atomic.Int64
}

var _ domain.FastStore = (*Store)(nil)

// New returns an empty store
func New() *Store { return &Store{} }

// Upsert stores r, replacing any record with the same client and response
func (s *Store) Upsert(ctx context.Context, r domain.FastRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := key{client: normalize.Key(r.ClientID), response: r.ResponseID}
	if _, loaded := s.m.Swap(k, r); !loaded {
		s.len.Add(1)
	}
	return nil
}

// All returns every record ordered by client then response
func (s *Store) All(ctx context.Context) ([]domain.FastRecord, error) {
	return s.collect(ctx, func(key) bool { return true })
}

// ByClient returns the records of one client ordered by response
func (s *Store) ByClient(ctx context.Context, clientID string) ([]domain.FastRecord, error) {
	want := normalize.Key(clientID)
	return s.collect(ctx, func(k key) bool { return k.client == want })
}

// Len is the number of distinct client and response pairs
func (s *Store) Len() int { return int(s.len.Load()) }

func (s *Store) collect(ctx context.Context, match func(key) bool) ([]domain.FastRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.FastRecord, 0, s.Len())
	s.m.Range(func(k, v any) bool {
		if match(k.(key)) {
			out = append(out, v.(domain.FastRecord))
		}
		return ctx.Err() == nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b domain.FastRecord) int {
		return cmp.Or(
			cmp.Compare(normalize.Key(a.ClientID), normalize.Key(b.ClientID)),
			cmp.Compare(a.ResponseID, b.ResponseID),
		)
	})
	return out, nil
}
