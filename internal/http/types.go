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

type Server struct {
	Store          booking.BookingStore
	Players        players.PlayerStore
	Availability   *availability.Resolver
	Roster         *roster.Manager
	Lifecycle      *lifecycle.Controller
	Stats          stats.StatsStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}
