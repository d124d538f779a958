package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors.
type Service struct {
	BookingsCreated    prometheus.Counter
	SlotConflicts      prometheus.Counter
	RosterJoins        prometheus.Counter
	JoinRejections     prometheus.Counter
	Cancellations      prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	RequestDuration    prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}

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
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_bookings_created_total",
			Help: "The total number of bookings created.",
		}),
		SlotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slot_conflicts_total",
			Help: "The total number of create attempts that lost the slot race.",
		}),
		RosterJoins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_roster_joins_total",
			Help: "The total number of players seated on open matches.",
		}),
		JoinRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_join_rejections_total",
			Help: "The total number of join attempts rejected (full, duplicate or private).",
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_cancellations_total",
			Help: "The total number of bookings cancelled by their owner.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_notifications_sent_total",
			Help: "The total number of club notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_notifications_failed_total",
			Help: "The total number of club notifications that failed to send.",
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_request_duration_seconds",
			Help:    "The duration of individual booking operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.BookingsCreated,
		s.SlotConflicts,
		s.RosterJoins,
		s.JoinRejections,
		s.Cancellations,
		s.NotifSent,
		s.NotifFailed,
		s.RequestDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncBookingsCreated() {
	s.BookingsCreated.Inc()
}

func (s *Service) IncSlotConflicts() {
	s.SlotConflicts.Inc()
}

func (s *Service) IncRosterJoins() {
	s.RosterJoins.Inc()
}

func (s *Service) IncJoinRejections() {
	s.JoinRejections.Inc()
}

func (s *Service) IncCancellations() {
	s.Cancellations.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) ObserveRequestDuration(duration float64) {
	s.RequestDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
