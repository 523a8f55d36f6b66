package adapthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"fitlog/internal/app"
	"fitlog/internal/metrics"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Options configures the ambient behaviour of the Server.
type Options struct {
	Logger         zerolog.Logger
	Metrics        *metrics.Collector
	Gatherer       prometheus.Gatherer
	Health         HealthChecker
	AllowedOrigins []string
	// RateLimit is the sustained requests per second for /api; zero disables limiting.
	RateLimit rate.Limit
	RateBurst int
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	users      *app.UserService
	activities *app.ActivityService
	nutrition  *app.NutritionService
	reports    *app.ReportService

	log      zerolog.Logger
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer
	health   HealthChecker
	origins  []string
	limiter  *rate.Limiter
	now      func() time.Time
}

// New creates a Server wired to the given application services.
func New(us *app.UserService, as *app.ActivityService, ns *app.NutritionService, rs *app.ReportService, opts Options) *Server {
	s := &Server{
		users:      us,
		activities: as,
		nutrition:  ns,
		reports:    rs,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		gatherer:   opts.Gatherer,
		health:     opts.Health,
		origins:    opts.AllowedOrigins,
		now:        time.Now,
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector(prometheus.NewRegistry())
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(opts.RateLimit, burst)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed", nil)
	})

	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimitMiddleware)
		r.Get("/health", s.handleHealth)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleCreateUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetUser)
				r.Put("/", s.handleUpdateUser)
				r.Delete("/", s.handleDeleteUser)
				r.Get("/activities", s.handleUserActivities)
				r.Get("/nutrition", s.handleUserNutrition)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/calories-burned", s.handleCaloriesBurned)
					r.Get("/activity-types", s.handleActivityTypes)
					r.Get("/calories-consumed", s.handleCaloriesConsumed)
					r.Get("/meal-types", s.handleMealTypes)
					r.Get("/macros", s.handleMacros)
					r.Get("/summary", s.handleSummary)
					r.Get("/{period}", s.handlePeriodReport)
				})
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.handleListActivities)
			r.Post("/", s.handleCreateActivity)
			r.Get("/{id}", s.handleGetActivity)
			r.Put("/{id}", s.handleUpdateActivity)
			r.Delete("/{id}", s.handleDeleteActivity)
		})

		r.Route("/nutrition", func(r chi.Router) {
			r.Get("/", s.handleListNutrition)
			r.Post("/", s.handleCreateNutrition)
			r.Get("/{id}", s.handleGetNutrition)
			r.Put("/{id}", s.handleUpdateNutrition)
			r.Delete("/{id}", s.handleDeleteNutrition)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			writeError(w, http.StatusServiceUnavailable, codeUnavailable, "database unreachable", nil)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
