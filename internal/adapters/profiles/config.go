package profiles

import (
	"time"

	"sitesearch/internal/platform/config"
	"sitesearch/internal/platform/logger"
)

// FromConf builds the profile Source from PROFILES_* keys under cfg
// an empty PROFILES_URL disables lookups and returns nil
func FromConf(cfg config.Conf) Source {
	pc := cfg.Prefix("PROFILES_")
	base := pc.MayURL("URL", "")
	if base == "" {
		logger.Named("profiles").Info().Msg("no profile service configured; site titles stay empty")
		return nil
	}
	c := NewClient(Options{
		BaseURL:    base,
		UserAgent:  pc.MayString("USER_AGENT", defaultUA),
		Timeout:    pc.MayDuration("TIMEOUT", defaultTimeout),
		MaxRetries: pc.MayInt("RETRIES", 1),
	})
	if !pc.MayBool("BREAKER", true) {
		return c
	}
	return NewBreaker(c, BreakerOptions{
		FailureThreshold: uint32(max(1, pc.MayInt("BREAKER_FAILURES", 5))),
		OpenFor:          pc.MayDuration("BREAKER_OPEN_FOR", 30*time.Second),
	})
}
