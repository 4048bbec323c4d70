package config

import "time"

// UpstreamConfig controls where the proxies and the standings fetcher send traffic.
type UpstreamConfig struct {
	EspnBaseURL     string
	SportsDBBaseURL string
	NewsFeedURL     string
	WikiAPIURL      string
	Timeout         time.Duration
	WikiTimeout     time.Duration
}

func loadUpstreams() UpstreamConfig {
	return UpstreamConfig{
		EspnBaseURL:     envOrDefault(envEspnBaseURL, defaultEspnBaseURL),
		SportsDBBaseURL: envOrDefault(envSportsDBBaseURL, defaultSportsDBBaseURL),
		NewsFeedURL:     envOrDefault(envNewsFeedURL, defaultNewsFeedURL),
		WikiAPIURL:      envOrDefault(envWikiAPIURL, defaultWikiAPIURL),
		Timeout:         durationEnvOrDefault(envUpstreamTimeout, defaultUpstreamTimeout),
		WikiTimeout:     durationEnvOrDefault(envWikiTimeout, defaultWikiTimeout),
	}
}
