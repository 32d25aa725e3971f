package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mauv0809/padel-tournament/internal/config"
	"github.com/mauv0809/padel-tournament/internal/http/handlers"
	"github.com/mauv0809/padel-tournament/internal/notifier"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

func NewServer(svc *tournament.Service, live handlers.LiveServer, notifier notifier.Notifier, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Service:        svc,
		Live:           live,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	origins := s.Cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.Router.Use(paramsMiddleware)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/health", handlers.HealthCheckHandler())

	s.Router.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", handlers.ListCategoriesHandler(s.Service))
			r.Post("/", handlers.CreateCategoryHandler(s.Service))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetCategoryHandler(s.Service))
				r.Delete("/", handlers.DeleteCategoryHandler(s.Service))
				r.Post("/draw", handlers.DrawGroupsHandler(s.Service))
				r.Post("/draw/save", handlers.SaveDrawHandler(s.Service))
				r.Get("/standings", handlers.CategoryStandingsHandler(s.Service))
				r.Get("/qualifiers", handlers.QualifiersHandler(s.Service))
				r.Get("/bracket", handlers.GetBracketHandler(s.Service))
				r.Post("/bracket", handlers.SeedBracketHandler(s.Service))
				r.Delete("/bracket", handlers.DeleteBracketHandler(s.Service))
				r.Get("/bracket/unassigned", handlers.UnassignedTeamsHandler(s.Service))
				r.Get("/champion", handlers.ChampionHandler(s.Service))
			})
		})
		r.Route("/teams", func(r chi.Router) {
			r.Get("/", handlers.ListTeamsHandler(s.Service))
			r.Post("/", handlers.CreateTeamHandler(s.Service))
			r.Get("/{id}", handlers.GetTeamHandler(s.Service))
			r.Put("/{id}", handlers.UpdateTeamHandler(s.Service))
			r.Delete("/{id}", handlers.DeleteTeamHandler(s.Service))
		})
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", handlers.ListGroupsHandler(s.Service))
			r.Post("/", handlers.CreateGroupHandler(s.Service))
			r.Get("/{id}", handlers.GetGroupHandler(s.Service))
			r.Delete("/{id}", handlers.DeleteGroupHandler(s.Service))
			r.Post("/{id}/teams", handlers.AddGroupTeamHandler(s.Service))
			r.Delete("/{id}/teams/{teamID}", handlers.RemoveGroupTeamHandler(s.Service))
			r.Post("/{id}/generate", handlers.GenerateMatchesHandler(s.Service))
			r.Get("/{id}/standings", handlers.GroupStandingsHandler(s.Service))
		})
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", handlers.ListMatchesHandler(s.Service))
			r.Post("/", handlers.CreateMatchHandler(s.Service))
			r.Get("/{id}", handlers.GetMatchHandler(s.Service))
			r.Put("/{id}/result", handlers.RecordResultHandler(s.Service))
			r.Delete("/{id}/result", handlers.ClearResultHandler(s.Service))
			r.Put("/{id}/placeholder", handlers.ResolvePlaceholderHandler(s.Service))
			r.Put("/{id}/slots/{side}", handlers.AssignSlotHandler(s.Service))
			r.Delete("/{id}/slots/{side}", handlers.RemoveSlotHandler(s.Service))
			r.Put("/{id}/booking", handlers.AttachBookingHandler(s.Service))
		})
		r.Get("/bookings", handlers.ListBookingsHandler(s.Service))
		r.Get("/prizes", handlers.ListPrizesHandler(s.Service))
		r.Post("/prizes", handlers.CreatePrizeHandler(s.Service))
		r.Put("/prizes/{id}", handlers.UpdatePrizeHandler(s.Service))
		r.Get("/tournaments", handlers.ListTournamentsHandler(s.Service))
		r.Post("/tournaments", handlers.CreateTournamentHandler(s.Service))
	})

	s.Router.Get("/ws/categories/{id}", handlers.LiveHandler(s.Service, s.Live))
	s.Router.Post("/pubsub/result-recorded", handlers.ResultRecordedHandler(s.Service, s.pubsub))
	s.Router.Handle("/slack/command/standings",
		Chain(handlers.StandingsCommandHandler(s.Service, s.Notifier), slackVerifier(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
