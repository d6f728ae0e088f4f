package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/JDeep1234/airwise/internal/service"
)

// Scheduler periodically captures observations into the history store and
// retrains the forecasting model.
type Scheduler struct {
	scheduler       *gocron.Scheduler
	service         *service.Service
	fetchInterval   time.Duration
	retrainInterval time.Duration
}

// New creates a new Scheduler.
func New(svc *service.Service, fetchInterval, retrainInterval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler:       gocron.NewScheduler(time.UTC),
		service:         svc,
		fetchInterval:   fetchInterval,
		retrainInterval: retrainInterval,
	}
}

// Start schedules the periodic jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.fetchInterval > 0 {
		_, err := s.scheduler.Every(s.fetchInterval).Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.service.CaptureObservation(ctx); err != nil {
				log.Printf("scheduler: observation capture failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
	}

	if s.retrainInterval > 0 {
		_, err := s.scheduler.Every(s.retrainInterval).WaitForSchedule().Do(func() {
			log.Println("scheduler: running scheduled retrain")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			report, err := s.service.Train(ctx, 0)
			if err != nil {
				log.Printf("scheduler: retrain failed: %v", err)
				return
			}
			log.Printf("scheduler: retrain complete, model %s rmse=%.2f r2=%.3f",
				report.ModelID, report.Metrics.RMSE, report.Metrics.R2)
		})
		if err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
