package syncer

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const DefaultPollInterval = 60 * time.Second

// Poller keeps the customer list warm on a fixed interval. Every
// other resource is fetch-on-demand; the customer list is the one
// collection the dashboard always has on screen.
type Poller struct {
	scheduler *gocron.Scheduler
	queries   *Queries
	interval  time.Duration
	logg      *zap.SugaredLogger
}

func NewPoller(queries *Queries, timeZone string, interval time.Duration, logg *zap.SugaredLogger) *Poller {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		location = time.UTC
	}

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return &Poller{
		scheduler: scheduler,
		queries:   queries,
		interval:  interval,
		logg:      logg,
	}
}

func (p *Poller) Start() error {
	_, err := p.scheduler.Every(int(p.interval.Seconds())).Seconds().Tag("poll-customers").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if snapshot := p.queries.RefreshCustomers(ctx); snapshot.Err != nil {
			p.logg.Warnf("periodic customer refresh failed: %v", snapshot.Err)
		}
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

func (p *Poller) Stop() {
	p.scheduler.Stop()
}
