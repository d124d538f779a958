package http

import (
	"net/http"

	"github.com/mauv0809/padel-reserva/internal/availability"
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/config"
	"github.com/mauv0809/padel-reserva/internal/lifecycle"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/notifier"
	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/stats"
)

func NewServer(store booking.BookingStore, playerStore players.PlayerStore, resolver *availability.Resolver, rosterMgr *roster.Manager, controller *lifecycle.Controller, statsStore stats.StatsStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Store:          store,
		Players:        playerStore,
		Availability:   resolver,
		Roster:         rosterMgr,
		Lifecycle:      controller,
		Stats:          statsStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/availability", Chain(s.AvailabilityHandler(), paramsMiddleware))
	s.Router.Handle("/bookings", Chain(s.CreateBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/join", Chain(s.JoinBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/leave", Chain(s.LeaveBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/cancel", Chain(s.CancelBookingHandler(), paramsMiddleware))
	s.Router.Handle("/bookings/players", Chain(s.ListRosterHandler(), paramsMiddleware))
	s.Router.Handle("/my-bookings", Chain(s.MyBookingsHandler(), paramsMiddleware))
	s.Router.Handle("/next-booking", Chain(s.NextBookingHandler(), paramsMiddleware))
	s.Router.Handle("/open-matches", Chain(s.OpenMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
