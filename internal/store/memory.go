package store

import (
	"errors"
	"sync"
	"time"

	"github.com/JDeep1234/airwise/internal/aqi"
)

var (
	// ErrNotFound is returned when no observations are available.
	ErrNotFound = errors.New("no observations available")
)

// MemoryStore is a concurrency-safe in-memory history of hourly observations
// for the monitored location, ordered by timestamp ascending.
type MemoryStore struct {
	mu sync.RWMutex

	observations []aqi.Observation

	// retention configuration
	maxHistory int           // max number of observations
	maxAge     time.Duration // optional max age
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a new observation and enforces retention. Out-of-order or
// duplicate timestamps are dropped so the series stays strictly increasing,
// which the feature builder relies on.
func (s *MemoryStore) Save(obs aqi.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.observations); n > 0 && !obs.Timestamp.After(s.observations[n-1].Timestamp) {
		return
	}

	s.observations = append(s.observations, obs)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.observations) > s.maxHistory {
		over := len(s.observations) - s.maxHistory
		s.observations = s.observations[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.observations); i++ {
			if !s.observations[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.observations) {
			s.observations = s.observations[i:]
		}
	}
}

// Latest returns the most recent observation.
func (s *MemoryStore) Latest() (aqi.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.observations) == 0 {
		return aqi.Observation{}, ErrNotFound
	}
	return s.observations[len(s.observations)-1], nil
}

// Recent returns up to n most recent observations, oldest first.
func (s *MemoryStore) Recent(n int) ([]aqi.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.observations) == 0 {
		return nil, ErrNotFound
	}

	start := 0
	if n > 0 && len(s.observations) > n {
		start = len(s.observations) - n
	}

	out := make([]aqi.Observation, len(s.observations)-start)
	copy(out, s.observations[start:])
	return out, nil
}

// Range returns all observations between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]aqi.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []aqi.Observation
	for _, obs := range s.observations {
		if !obs.Timestamp.Before(from) && !obs.Timestamp.After(to) {
			result = append(result, obs)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// Len reports how many observations are currently retained.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observations)
}
