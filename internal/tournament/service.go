// Package tournament is the service layer of the tournament: the registry
// of categories, teams and groups, plus the orchestration of the match
// generator, result recorder, standings and bracket packages over a store.
package tournament

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/playtomic"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/store"
)

// Service handles the business logic of running a tournament.
type Service struct {
	store    store.Store
	metrics  metrics.Metrics
	events   pubsub.PubSubClient
	live     live.Broadcaster
	bookings playtomic.PlaytomicClient
	notifier notifier.Notifier
	rng      *rand.Rand

	// mu serializes match writes so bracket and group updates never interleave.
	mu sync.Mutex
}

type Option func(*Service)

// WithRand fixes the random source used by the capped generator and the group draw.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// New creates a new Service.
func New(store store.Store, metrics metrics.Metrics, events pubsub.PubSubClient, live live.Broadcaster,
	bookings playtomic.PlaytomicClient, notifier notifier.Notifier, opts ...Option) *Service {
	s := &Service{
		store:    store,
		metrics:  metrics,
		events:   events,
		live:     live,
		bookings: bookings,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rejectReason is the metrics label of a refused result.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, padel.ErrNoResult):
		return "no_result"
	case errors.Is(err, padel.ErrTiedSet):
		return "tied_set"
	case errors.Is(err, padel.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, padel.ErrSidesNotAssigned):
		return "sides_not_assigned"
	case errors.Is(err, padel.ErrDownstreamDecided):
		return "downstream_decided"
	case errors.Is(err, padel.ErrSlotOccupied):
		return "slot_occupied"
	case errors.Is(err, padel.ErrNotFound):
		return "not_found"
	}
	return "other"
}
