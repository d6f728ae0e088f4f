package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/JDeep1234/airwise/internal/aqi/providers"
	"github.com/JDeep1234/airwise/internal/forecast"
)

// Service orchestrates observation capture, model training and forecasting.
// The real provider is preferred everywhere; the synthetic generator steps in
// when it fails, and the synthetic daily outlook steps in when the ML engine
// reports a structured failure, so read endpoints always have an answer.
type Service struct {
	store        aqi.Store
	provider     aqi.Provider
	synthetic    *providers.SyntheticProvider
	engine       *forecast.Engine
	trainingDays int
}

// New creates a Service. provider may be nil when no API key is configured;
// the synthetic generator then serves as the only source.
func New(store aqi.Store, provider aqi.Provider, synthetic *providers.SyntheticProvider, engine *forecast.Engine, trainingDays int) *Service {
	return &Service{
		store:        store,
		provider:     provider,
		synthetic:    synthetic,
		engine:       engine,
		trainingDays: trainingDays,
	}
}

// Engine exposes the forecasting engine for status reporting.
func (s *Service) Engine() *forecast.Engine {
	return s.engine
}

// Current returns the latest observation, fetching from the real provider
// first and degrading to the synthetic generator.
func (s *Service) Current(ctx context.Context) (aqi.Observation, error) {
	if s.provider != nil {
		obs, err := s.provider.Fetch(ctx)
		if err == nil {
			return obs, nil
		}
		log.Printf("provider %s fetch failed: %v; falling back to synthetic data", s.provider.Name(), err)
	}
	return s.synthetic.Fetch(ctx)
}

// CaptureObservation fetches the current observation and appends it to the
// history store. Called periodically by the scheduler.
func (s *Service) CaptureObservation(ctx context.Context) error {
	obs, err := s.Current(ctx)
	if err != nil {
		return fmt.Errorf("capture observation: %w", err)
	}
	s.store.Save(obs)
	return nil
}

// DailyForecast returns up to days daily summaries. The second return value
// reports whether the ML engine produced them; false means the synthetic
// fallback was used.
func (s *Service) DailyForecast(ctx context.Context, days int) ([]aqi.DailySummary, bool, error) {
	if days <= 0 {
		return nil, false, fmt.Errorf("days must be greater than zero")
	}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, false, err
	}

	summaries, err := s.engine.ForecastDaily(current)
	if err != nil {
		if !errors.Is(err, forecast.ErrModelNotLoaded) {
			log.Printf("ERROR: ml daily forecast failed: %v; using fallback", err)
		}
		return s.synthetic.FallbackDaily(days), false, nil
	}

	if len(summaries) > days {
		summaries = summaries[:days]
	}
	return summaries, true, nil
}

// HourlyTrend returns the next 24 hours. Without a trained model it serves
// the synthetic hourly pattern instead.
func (s *Service) HourlyTrend(ctx context.Context) ([]aqi.ForecastPoint, bool, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, false, err
	}

	points, err := s.engine.ForecastHourly(current)
	if err != nil {
		if !errors.Is(err, forecast.ErrModelNotLoaded) {
			log.Printf("ERROR: ml hourly forecast failed: %v; using fallback", err)
		}
		return s.syntheticHourly(ctx)
	}
	return points, true, nil
}

func (s *Service) syntheticHourly(ctx context.Context) ([]aqi.ForecastPoint, bool, error) {
	history, err := s.synthetic.FetchHistory(ctx, forecast.HorizonHourly)
	if err != nil {
		return nil, false, err
	}
	points := make([]aqi.ForecastPoint, len(history))
	for i, obs := range history {
		points[i] = aqi.ForecastPoint{
			Timestamp:     obs.Timestamp,
			HourLabel:     obs.Timestamp.Format("15:04"),
			PredictedAQI:  int(obs.AQI),
			PredictedPM25: obs.PM25(),
		}
	}
	return points, false, nil
}

// Historical returns roughly days*24 hourly observations, preferring stored
// real history and topping up synthetically when the store is short.
func (s *Service) Historical(ctx context.Context, days int) ([]aqi.Observation, error) {
	hours := days * 24
	if obs, err := s.store.Recent(hours); err == nil && len(obs) >= hours {
		return obs, nil
	}
	return s.synthetic.FetchHistory(ctx, hours)
}

// Train refits the model. Stored real observations are used when the store
// holds enough of them; otherwise a synthetic hourly series bootstraps the
// model the way the original service trained on generated history.
func (s *Service) Train(ctx context.Context, days int) (*forecast.TrainingReport, error) {
	if days <= 0 {
		days = s.trainingDays
	}
	hours := days * 24

	history, err := s.store.Recent(hours)
	if err != nil || len(history) <= forecast.MinHistory() {
		history, err = s.synthetic.FetchHistory(ctx, hours)
		if err != nil {
			return nil, fmt.Errorf("assemble training history: %w", err)
		}
	}

	return s.engine.Train(history)
}

// Recommendations returns health guidance for the current AQI level.
func (s *Service) Recommendations(ctx context.Context) (aqi.Observation, []string, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return aqi.Observation{}, nil, err
	}
	return current, aqi.Recommendations(current.AQI), nil
}
