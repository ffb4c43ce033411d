// Package api exposes the viewer service over HTTP to the rendering
// layer. Handlers stay thin: all merge, sort, and filter logic lives in
// the viewer package.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/config"
	"github.com/rwxlff/RWX-Ship-Viewer/internal/viewer"
	"github.com/rs/zerolog/log"
)

type Server struct {
	svc *viewer.Service
	cfg *config.Config
}

func NewServer(svc *viewer.Service, cfg *config.Config) *Server {
	return &Server{svc: svc, cfg: cfg}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthCheck)
		r.Get("/status", s.getStatus)

		// Session lifecycle
		r.Route("/session", func(r chi.Router) {
			r.Post("/open", s.openSession)
			r.Post("/close", s.closeSession)
			r.Post("/toggle", s.toggleSession)
		})

		// Merged ship table
		r.Route("/ships", func(r chi.Router) {
			r.Get("/", s.listShips)
			r.Get("/{name}", s.getShip)
		})

		r.Get("/filters", s.getFilterOptions)
		r.Post("/favorites/{name}", s.toggleFavorite)

		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.putSettings)

		r.Post("/cache/clear", s.clearCache)
	})

	return r
}

// --- Session ---

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	state, stage, loadErr := s.svc.Status()
	status := map[string]any{
		"state": state,
		"stage": stage,
	}
	if loadErr != nil {
		status["error"] = loadErr.Error()
		status["retry"] = "reload the data with POST /api/session/open"
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) openSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Open(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "loading ship data failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": string(viewer.StateReady)})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	s.svc.Close()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(viewer.StateClosed)})
}

func (s *Server) toggleSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Toggle(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "loading ship data failed: "+err.Error())
		return
	}
	state, _, _ := s.svc.Status()
	writeJSON(w, http.StatusOK, map[string]string{"state": string(state)})
}

// --- Ships ---

func (s *Server) listShips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := viewer.Filter{
		Search:        q.Get("search"),
		Manufacturer:  q.Get("manufacturer"),
		Type:          q.Get("type"),
		Status:        q.Get("status"),
		FavoritesOnly: q.Get("favorites") == "true",
	}

	column := viewer.Column(q.Get("sort"))
	if column == "" {
		column = viewer.ColName
	}
	if !viewer.ValidColumn(column) {
		writeError(w, http.StatusBadRequest, "unknown sort column: "+string(column))
		return
	}
	ascending := q.Get("dir") != "desc"

	ships, err := s.svc.Ships(filter, column, ascending)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	currency := s.svc.Settings(r.Context()).Currency
	for i := range ships {
		ships[i].Display = viewer.RenderDisplay(&ships[i], currency)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(ships),
		"ships": ships,
	})
}

func (s *Server) getShip(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	view, ok := s.svc.VehicleData(name)
	if !ok {
		writeError(w, http.StatusNotFound, "ship not found: "+name)
		return
	}
	view.Display = viewer.RenderDisplay(view, s.svc.Settings(r.Context()).Currency)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) getFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := s.svc.Options()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

// --- Favorites ---

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	favorite, err := s.svc.ToggleFavorite(r.Context(), name)
	if err != nil {
		if errors.Is(err, viewer.ErrNotReady) {
			writeServiceError(w, err)
			return
		}
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "favorite": favorite})
}

// --- Settings ---

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Settings(r.Context()))
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	settings := viewer.DefaultSettings()
	if err := json.Unmarshal(body, &settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if settings.SortColumn != "" && !viewer.ValidColumn(settings.SortColumn) {
		writeError(w, http.StatusBadRequest, "unknown sort column: "+string(settings.SortColumn))
		return
	}

	s.svc.SaveSettings(r.Context(), settings)
	writeJSON(w, http.StatusOK, settings)
}

// --- Cache ---

func (s *Server) clearCache(w http.ResponseWriter, r *http.Request) {
	s.svc.ClearCache(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// --- Helpers ---

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, viewer.ErrNotReady) {
		writeError(w, http.StatusConflict, "no loaded session; POST /api/session/open first")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
