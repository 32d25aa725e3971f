// Package digest posts every category's group tables on a fixed interval.
package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/standings"
)

// Source provides the tables the digest reports.
type Source interface {
	ListCategories() ([]padel.Category, error)
	CategoryStandings(ctx context.Context, category string) ([]standings.Table, error)
}

type Digest struct {
	source    Source
	notifier  notifier.Notifier
	scheduler gocron.Scheduler
	dryRun    bool
}

// New registers the digest job. Call Start to begin running it.
func New(source Source, n notifier.Notifier, interval time.Duration, dryRun bool) (*Digest, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("digest interval must be positive, got %s", interval)
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	d := &Digest{source: source, notifier: n, scheduler: scheduler, dryRun: dryRun}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := d.RunOnce(context.Background()); err != nil {
				log.Error("Standings digest failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule digest: %w", err)
	}
	log.Info("Standings digest scheduled", "interval", interval)
	return d, nil
}

func (d *Digest) Start() {
	d.scheduler.Start()
}

func (d *Digest) Shutdown() error {
	return d.scheduler.Shutdown()
}

// RunOnce sends one message per group. Categories without groups are
// skipped; a failing category does not stop the others.
func (d *Digest) RunOnce(ctx context.Context) error {
	categories, err := d.source.ListCategories()
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	var errs []error
	sent := 0
	for _, c := range categories {
		tables, err := d.source.CategoryStandings(ctx, c.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("category %s: %w", c.ID, err))
			continue
		}
		for _, table := range tables {
			title := fmt.Sprintf("%s - %s", c.Name, table.Group.Name)
			if err := d.notifier.SendStandings(title, table.Rows, d.dryRun); err != nil {
				errs = append(errs, fmt.Errorf("group %s: %w", table.Group.ID, err))
				continue
			}
			sent++
		}
	}
	log.Info("Standings digest sent", "categories", len(categories), "messages", sent)
	return errors.Join(errs...)
}
