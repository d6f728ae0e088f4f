package aqi

import (
	"context"
	"time"
)

// Provider abstracts a source of current air quality observations
// (e.g. OpenWeatherMap air pollution API, or the synthetic generator).
type Provider interface {
	Name() string
	Fetch(ctx context.Context) (Observation, error)
}

// HistoryProvider is implemented by providers that can supply an hourly
// historical series, used to bootstrap model training when the local
// observation store has not accumulated enough history yet.
type HistoryProvider interface {
	FetchHistory(ctx context.Context, hours int) ([]Observation, error)
}

// Store is the contract the in-memory observation store (and any future
// persistent store) must satisfy.
type Store interface {
	Save(obs Observation)
	Latest() (Observation, error)
	Recent(n int) ([]Observation, error)
	Range(from, to time.Time) ([]Observation, error)
	Len() int
}
