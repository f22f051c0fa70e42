package service

import (
	"context"

	"surveyflow/internal/platform/logger"
	"surveyflow/internal/services/surveys/domain"
)

// WarmUp copies every durable record into the fast store and returns how many
// were loaded. Failures are logged and never abort startup
func WarmUp(ctx context.Context, repo domain.Repository, fast domain.FastStore, log *logger.Logger) int {
	if log == nil {
		log = logger.Named("warmup")
	}
	log.Info().Msg("warming up fast store from database")

	recs, err := repo.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("fast store warm-up failed")
		return 0
	}
	log.Info().Int("records", len(recs)).Msg("records found for warm-up")

	loaded := 0
	for _, r := range recs {
		if err := fast.Upsert(ctx, r.FastRecord()); err != nil {
			log.Error().Err(err).Int("loaded", loaded).Msg("fast store warm-up failed")
			return loaded
		}
		loaded++
	}
	log.Info().Int("loaded", loaded).Msg("fast store warm-up completed")
	return loaded
}
