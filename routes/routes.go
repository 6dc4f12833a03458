package routes

import (
	"time"

	"github.com/Dosada05/cue-league/handlers"
	"github.com/Dosada05/cue-league/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/cue-league/docs"
)

// Handlers bundles everything SetupRoutes mounts.
type Handlers struct {
	Players    *handlers.PlayerHandler
	RoundRobin *handlers.RoundRobinHandler
	Knockout   *handlers.KnockoutHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

// Options carries the settings routing depends on.
type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// websocket connections must not inherit the request timeout
	router.Get("/ws/draws/{room}", h.WebSocket.ServeWs)

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Route("/api/v1", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Players.ListPlayers)
			r.Get("/stats", h.Players.PlayerStats)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Players.CreatePlayer)
				r.Put("/{playerID}", h.Players.UpdatePlayer)
			})
		})

		r.Route("/roundrobin", func(r chi.Router) {
			r.Get("/", h.RoundRobin.ListDraws)
			r.Post("/preview", h.RoundRobin.PreviewDraw)
			r.Get("/{drawID}", h.RoundRobin.GetDraw)
			r.Get("/{drawID}/standings", h.RoundRobin.GetStandings)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.RoundRobin.CreateDraw)
				r.Post("/{drawID}/groups/{groupIndex}/matches/{matchIndex}/frames", h.RoundRobin.SubmitFrames)
				r.Post("/{drawID}/knockout", h.RoundRobin.GenerateKnockout)
				r.Post("/{drawID}/knockout/advance", h.RoundRobin.AdvanceKnockout)
				r.Post("/{drawID}/archive", h.RoundRobin.ArchiveDraw)
			})
		})

		r.Route("/knockout", func(r chi.Router) {
			r.Get("/", h.Knockout.ListDraws)
			r.Get("/latest", h.Knockout.LatestDraw)
			r.Post("/preview", h.Knockout.PreviewDraw)
			r.Get("/{drawID}", h.Knockout.GetDraw)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Knockout.CreateDraw)
				r.Post("/{drawID}/advance", h.Knockout.AdvanceMatch)
				r.Post("/{drawID}/results", h.Knockout.RecordResults)
				r.Post("/{drawID}/archive", h.Knockout.ArchiveDraw)
			})
		})
	})
}
