package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"surveyflow/internal/services/surveys/domain"

	"github.com/rs/zerolog"
)

func nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func ev(client, response string, score int) domain.Event {
	return domain.Event{
		SurveyID:     "s-1",
		ClientID:     client,
		ResponseID:   response,
		NpsScore:     score,
		Satisfaction: "happy",
		SubmittedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IPAddress:    "10.0.0.1",
	}
}

// fakeEnc prefixes plaintext and counts calls
type fakeEnc struct {
	calls atomic.Int32
	err   error
}

func (f *fakeEnc) Encrypt(p string) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "enc:" + p, nil
}

func (f *fakeEnc) Decrypt(c string) (string, error) { return c[len("enc:"):], nil }

// fakeRepo keeps rows in memory keyed like the real table
type fakeRepo struct {
	mu        sync.Mutex
	rows      map[string]domain.Record
	ips       []string
	upsertErr error
	allErr    error
	pingErr   error
	schemaErr error
	schemaRun int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[string]domain.Record{}} }

func (f *fakeRepo) Upsert(_ context.Context, e domain.Event, encIP string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.ips = append(f.ips, encIP)
	f.rows[e.ClientID+":"+e.ResponseID] = domain.Record{
		ClientID: e.ClientID, ResponseID: e.ResponseID, NpsScore: e.NpsScore,
		Satisfaction: e.Satisfaction, SubmittedAt: e.SubmittedAt, EncryptedIP: encIP,
	}
	return nil
}

func (f *fakeRepo) All(context.Context) ([]domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	out := make([]domain.Record, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRepo) Ping(context.Context) error { return f.pingErr }

func (f *fakeRepo) EnsureSchema(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schemaRun++
	return f.schemaErr
}

// failingFast fails every upsert
type failingFast struct{ calls atomic.Int32 }

func (f *failingFast) Upsert(context.Context, domain.FastRecord) error {
	f.calls.Add(1)
	return errors.New("fast store down")
}
func (f *failingFast) All(context.Context) ([]domain.FastRecord, error) { return nil, nil }
func (f *failingFast) ByClient(context.Context, string) ([]domain.FastRecord, error) {
	return nil, nil
}

// scriptedProcessor counts calls and fails while fail returns true
type scriptedProcessor struct {
	calls atomic.Int32
	fail  func(n int32) bool
}

func (s *scriptedProcessor) factory() domain.ProcessorFactory {
	return func() domain.Processor { return s }
}

func (s *scriptedProcessor) Process(context.Context, domain.Event) error {
	n := s.calls.Add(1)
	if s.fail != nil && s.fail(n) {
		return errors.New("boom")
	}
	return nil
}
