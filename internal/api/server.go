package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/page"
	"github.com/dgallion1/docnav/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

// Server is the HTTP surface for the rendered document and its navigation.
type Server struct {
	router   chi.Router
	coord    *page.Coordinator
	log      *slog.Logger
	cfg      config.Config
	css      string
	upgrader websocket.Upgrader
}

// NewServer creates and configures the HTTP server.
func NewServer(coord *page.Coordinator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		coord: coord,
		log:   log,
		cfg:   cfg,
	}
	css, err := render.HighlightCSS(cfg.CodeStyle)
	if err != nil {
		log.Warn("highlight stylesheet unavailable", "style", cfg.CodeStyle, "error", err)
	}
	s.css = css
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handlePage)
	r.Get("/static/highlight.css", s.handleHighlightCSS)

	r.Get("/api/document", s.handleDocument)
	r.Get("/api/outline", s.handleOutline)
	r.Get("/api/nav", s.handleNav)
	r.Post("/api/active", s.handleActive)
	r.Get("/ws/scroll", s.handleScrollSocket)

	r.Group(func(r chi.Router) {
		if s.cfg.ReloadToken != "" {
			r.Use(AuthMiddleware(s.cfg.ReloadToken, s.log))
		}
		r.Post("/api/reload", s.handleReload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(s.css))
}
