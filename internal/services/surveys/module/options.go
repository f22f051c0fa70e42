package module

import (
	"time"

	"surveyflow/internal/platform/config"
	"surveyflow/internal/services/surveys/insights"
	"surveyflow/internal/services/surveys/queue"
	"surveyflow/internal/services/surveys/service"
)

// Options controls the survey pipeline
type Options struct {
	MaxRetryAttempts int
	// RetryDelay is nil when unset; a pointer to 0 retries immediately
	RetryDelay       *time.Duration
	QueueCapacity    int
	Consumers        int
	AttemptTimeout   time.Duration
	InsightsInterval time.Duration
	HealthInterval   time.Duration
	EncryptionKey    string
	EncryptionIV     string
}

// FromConfig reads with SURVEY_ prefix; the encryption key and iv are required.
// Refresh intervals under insights.MinInterval are raised by the refresher
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SURVEY_")
	return Options{
		MaxRetryAttempts: c.MayIntMin("MAX_RETRY_ATTEMPTS", service.DefaultMaxRetryAttempts, 1),
		RetryDelay:       Delay(time.Duration(c.MayIntMin("RETRY_DELAY_MS", int(service.DefaultRetryDelay.Milliseconds()), 0)) * time.Millisecond),
		QueueCapacity:    c.MayIntMin("QUEUE_CAPACITY", queue.DefaultCapacity, 1),
		Consumers:        c.MayIntMin("WORKER_CONSUMERS", 1, 1),
		AttemptTimeout:   c.MayDuration("ATTEMPT_TIMEOUT", service.DefaultAttemptTimeout),
		InsightsInterval: time.Duration(c.MayInt("INSIGHTS_REFRESH_SECONDS", int(insights.DefaultInterval.Seconds()))) * time.Second,
		HealthInterval:   c.MayDuration("HEALTH_INTERVAL", service.DefaultHealthInterval),
		EncryptionKey:    c.MustString("ENCRYPTION_KEY"),
		EncryptionIV:     c.MustString("ENCRYPTION_IV"),
	}
}

// Delay returns a RetryDelay override
func Delay(d time.Duration) *time.Duration { return &d }

// merge applies the set fields of o over base; zero counts as unset except for RetryDelay
func (base Options) merge(o Options) Options {
	if o.MaxRetryAttempts != 0 {
		base.MaxRetryAttempts = o.MaxRetryAttempts
	}
	if o.RetryDelay != nil {
		base.RetryDelay = o.RetryDelay
	}
	if o.QueueCapacity != 0 {
		base.QueueCapacity = o.QueueCapacity
	}
	if o.Consumers != 0 {
		base.Consumers = o.Consumers
	}
	if o.AttemptTimeout != 0 {
		base.AttemptTimeout = o.AttemptTimeout
	}
	if o.InsightsInterval != 0 {
		base.InsightsInterval = o.InsightsInterval
	}
	if o.HealthInterval != 0 {
		base.HealthInterval = o.HealthInterval
	}
	if o.EncryptionKey != "" {
		base.EncryptionKey = o.EncryptionKey
	}
	if o.EncryptionIV != "" {
		base.EncryptionIV = o.EncryptionIV
	}
	return base
}

func (o Options) retryDelay() time.Duration {
	if o.RetryDelay == nil {
		return service.DefaultRetryDelay
	}
	return *o.RetryDelay
}

func (o Options) serviceConfig() service.Config {
	return service.Config{
		QueueCapacity: o.QueueCapacity,
		Worker: service.WorkerConfig{
			MaxRetryAttempts: o.MaxRetryAttempts,
			RetryDelay:       o.retryDelay(),
			Consumers:        o.Consumers,
			AttemptTimeout:   o.AttemptTimeout,
		},
		InsightsInterval: o.InsightsInterval,
		HealthInterval:   o.HealthInterval,
		EncryptionKey:    o.EncryptionKey,
		EncryptionIV:     o.EncryptionIV,
	}
}
