package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ewilliams-labs/moodmix/internal/core/ports"
	"github.com/ewilliams-labs/moodmix/internal/core/services"
)

// Options tunes the HTTP surface.
type Options struct {
	CORSOrigins []string
	StaticDir   string // served at / when set
}

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Assembler
	checker  ports.ConnectivityChecker // nil when no Spotify client was built
	validate *validator.Validate
	router   chi.Router
	opts     Options
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Assembler, checker ports.ConnectivityChecker, opts Options) *Handler {
	h := &Handler{
		svc:      svc,
		checker:  checker,
		validate: validator.New(),
		router:   chi.NewRouter(),
		opts:     opts,
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	origins := h.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h.router.Use(middleware.RequestID)
	h.router.Use(middleware.RealIP)
	h.router.Use(requestLogger)
	h.router.Use(recoverJSON)
	h.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	h.router.Use(recordMetrics)

	h.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	h.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Post("/generate-playlist", h.GeneratePlaylist)
	})
	h.router.Handle("/metrics", promhttp.Handler())

	if h.opts.StaticDir != "" {
		h.router.Get("/*", h.serveStatic)
	}
}

// serveStatic serves the front-end bundle. Missing files get the JSON 404.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel == "" {
		rel = "index.html"
	}
	path := filepath.Join(h.opts.StaticDir, rel)

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
		info, err = os.Stat(path)
	}
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, path)
}
