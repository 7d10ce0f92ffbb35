package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sagarc03/statiq"
)

// CORSConfig configures cross-origin resource sharing for the standalone
// server.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// HandlerConfig configures the standalone server handler.
type HandlerConfig struct {
	// Logging enables per-request logging.
	Logging bool
	CORS    CORSConfig
	// Fallback receives requests the resolver defers. Defaults to the fixed
	// 404 response, which is what a pure file server wants.
	Fallback http.Handler
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Handler runs statiq as a standalone file server.
type Handler struct {
	config   HandlerConfig
	resolver *statiq.Resolver
}

// NewHandler creates a Handler with the given configuration and resolver.
func NewHandler(config *HandlerConfig, resolver *statiq.Resolver) *Handler {
	return &Handler{
		config:   *config,
		resolver: resolver,
	}
}

// Router returns an http.Handler with the middleware stack assembled: CORS
// and request logging when enabled, a health endpoint, and static resolution
// in front of the fallback for everything else.
func (h *Handler) Router() http.Handler {
	logger := h.config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	if h.config.Logging {
		r.Use(RequestLogger(logger))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	fallback := h.config.Fallback
	if fallback == nil {
		fallback = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			WriteNotFound(w)
		})
	}

	r.Handle("/*", Static(h.resolver, logger)(fallback))

	return r
}
