package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/padel-tournament/internal/config"
	"github.com/mauv0809/padel-tournament/internal/http/handlers"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

type Server struct {
	Service        *tournament.Service
	Live           handlers.LiveServer
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         chi.Router
	pubsub         pubsub.PubSubClient
}
