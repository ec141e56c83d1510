// Package editor exposes the layout engines to the editing frontend as a
// JSON API. Every mutation goes through the resize or layout engines (or
// the assign/remove and pan/zoom operations that wrap the crop engine) and
// is persisted to album.json before the response goes out.
package editor

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pjmuller/photobook/internal/album"
	"github.com/pjmuller/photobook/internal/config"
	"github.com/pjmuller/photobook/internal/images"
	"github.com/pjmuller/photobook/internal/layout"
	"github.com/pjmuller/photobook/internal/resize"
)

// Server holds the album document and the engines mutating it. The mutex
// serializes mutations: the UI delivers one gesture at a time, and the
// lock makes that assumption hold at the transport boundary too.
type Server struct {
	cfg    *config.Config
	store  *album.Store
	loader *images.Loader

	mu     sync.Mutex
	album  *album.Album
	engine *resize.Engine
}

// NewServer loads the album document, creating a default one when none
// exists yet.
func NewServer(cfg *config.Config) (*Server, error) {
	store := album.NewStore(cfg.AlbumPath)
	loader := images.NewLoader(cfg.PhotosDir)

	a, err := store.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		log.Info().Str("path", cfg.AlbumPath).Msg("No album found, creating default document")
		a = layout.DefaultAlbum(cfg, 8)
		if err := store.Save(a); err != nil {
			return nil, err
		}
	}

	return &Server{
		cfg:    cfg,
		store:  store,
		loader: loader,
		album:  a,
		engine: resize.New(cfg, loader.Func()),
	}, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/api/config", s.handleConfig)
	r.Get("/api/templates", s.handleTemplates)
	r.Get("/api/album", s.handleAlbum)
	r.Get("/api/photos", s.handlePhotos)
	r.Post("/api/pages", s.handleAddPage)

	r.Route("/api/pages/{pageID}", func(r chi.Router) {
		r.Post("/layout", s.handleChangeLayout)
		r.Post("/resize/start", s.handleResizeStart)
		r.Post("/resize/move", s.handleResizeMove)
		r.Post("/resize/end", s.handleResizeEnd)
		r.Post("/resize/cancel", s.handleResizeCancel)
		r.Put("/cells/{group}/{cell}/photo", s.handleAssignPhoto)
		r.Delete("/cells/{group}/{cell}/photo", s.handleRemovePhoto)
		r.Post("/cells/{group}/{cell}/pan", s.handlePan)
		r.Post("/cells/{group}/{cell}/zoom", s.handleZoom)
	})

	r.Handle("/photos/*", http.StripPrefix("/photos/",
		http.FileServer(http.Dir(s.cfg.PhotosDir))))

	return r
}

// requestLogger logs each request through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
	})
}

// save persists the album after a successful mutation. Callers hold the
// mutex.
func (s *Server) save(w http.ResponseWriter) bool {
	if err := s.store.Save(s.album); err != nil {
		log.Error().Err(err).Msg("Failed to persist album")
		respondError(w, http.StatusInternalServerError, "failed to persist album")
		return false
	}
	return true
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("JSON encoding failed")
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
