package datasource

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fireball-picks/internal/config"
)

// Sources bundles the two external data sources behind one shared
// rate-limited HTTP client
type Sources struct {
	Results ResultsSource
	Odds    OddsSource
	client  *RateLimitedHTTPClient
}

// NewSources builds the configured source clients
func NewSources(cfg *config.SourcesConfig, logger *logrus.Logger) *Sources {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.HTTP.HTTPTimeout()
	httpCfg.MaxRetries = cfg.HTTP.MaxRetries
	httpCfg.RateLimit = cfg.HTTP.RateLimit

	client := NewRateLimitedHTTPClient(httpCfg, logger)

	return &Sources{
		Results: NewScoreboardClient(client, cfg.Results.BaseURL, cfg.Results.SportID, logger),
		Odds: NewOddsAPIClient(client, cfg.Odds.BaseURL, cfg.Odds.APIKey, cfg.Odds.SportKey,
			cfg.Odds.Region, cfg.Odds.SnapshotHour, cfg.Odds.Bookmakers, logger),
		client: client,
	}
}

// Close releases the shared HTTP client
func (s *Sources) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
