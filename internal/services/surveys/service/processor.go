package service

import (
	"context"

	"surveyflow/internal/services/surveys/domain"
)

// processor runs the persistence steps for one event.
// One instance serves one queue item
type processor struct {
	enc   domain.Encryptor
	repo  domain.Repository
	fast  domain.FastStore
	track domain.Tracker
}

// NewProcessorFactory returns a factory handing out a fresh processor per item
func NewProcessorFactory(enc domain.Encryptor, repo domain.Repository, fast domain.FastStore, track domain.Tracker) domain.ProcessorFactory {
	return func() domain.Processor {
		return &processor{enc: enc, repo: repo, fast: fast, track: track}
	}
}

// Process encrypts the ip, writes the durable row, mirrors it into the fast store
// and folds the score into the NPS accumulator, in that order
func (p *processor) Process(ctx context.Context, e domain.Event) error {
	var encIP string
	if e.IPAddress != "" {
		var err error
		if encIP, err = p.enc.Encrypt(e.IPAddress); err != nil {
			return domain.ProcessingFailure(domain.OpEncrypt, err)
		}
	}

	if err := p.repo.Upsert(ctx, e, encIP); err != nil {
		return domain.ProcessingFailure(domain.OpPersist, err)
	}

	// durable write is authoritative; a fast store failure retries the whole item
	if err := p.fast.Upsert(ctx, domain.FastRecordOf(e)); err != nil {
		return domain.ProcessingFailure(domain.OpFastStore, err)
	}

	p.track.Track(e.ClientID, e.NpsScore)
	return nil
}
