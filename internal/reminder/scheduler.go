package reminder

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily LINE digest on a cron spec.
type Scheduler struct {
	cron    *cron.Cron
	service Service
}

// NewScheduler builds a scheduler in the business timezone. spec is a
// standard 5-field cron expression, e.g. "0 18 * * *" for 18:00 daily.
func NewScheduler(service Service, loc *time.Location) *Scheduler {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	return &Scheduler{cron: c, service: service}
}

func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		sent, err := s.service.SendDaily(ctx)
		if err != nil {
			log.Printf("reminder scheduler: send failed: %v", err)
			return
		}
		log.Printf("reminder scheduler: sent digest for %d reservation(s)", sent)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("reminder scheduler started (spec %q)", spec)
	return nil
}

// Stop stops scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("reminder scheduler stopped")
}
