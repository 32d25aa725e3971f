package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_generated_total",
			Help: "The total number of group and bracket matches generated.",
		}),
		PlaceholdersGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_placeholder_matches_generated_total",
			Help: "The total number of group matches generated without an opponent.",
		}),
		ResultsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_results_recorded_total",
			Help: "The total number of match results recorded, by phase.",
		}, []string{"phase"}),
		ResultsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_results_rejected_total",
			Help: "The total number of match results refused, by reason.",
		}, []string{"reason"}),
		BracketAdvancements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bracket_advancements_total",
			Help: "The total number of winners moved into the next bracket round.",
		}),
		StandingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_standings_recompute_duration_seconds",
			Help:    "The duration of a group standings recomputation.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		LiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_live_connections",
			Help: "The number of open live update websocket connections.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesGenerated,
		s.PlaceholdersGenerated,
		s.ResultsRecorded,
		s.ResultsRejected,
		s.BracketAdvancements,
		s.StandingsDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.LiveConnections,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) AddMatchesGenerated(n int) {
	s.MatchesGenerated.Add(float64(n))
}

func (s *Service) AddPlaceholdersGenerated(n int) {
	s.PlaceholdersGenerated.Add(float64(n))
}

func (s *Service) IncResultsRecorded(phase string) {
	s.ResultsRecorded.WithLabelValues(phase).Inc()
}

func (s *Service) IncResultsRejected(reason string) {
	s.ResultsRejected.WithLabelValues(reason).Inc()
}

func (s *Service) IncBracketAdvancements() {
	s.BracketAdvancements.Inc()
}

func (s *Service) ObserveStandingsDuration(duration float64) {
	s.StandingsDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetLiveConnections(n int) {
	s.LiveConnections.Set(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
