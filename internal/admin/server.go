package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omarshaarawi/statbot/internal/activity"
	"github.com/omarshaarawi/statbot/internal/service"
)

// RefreshFunc reloads the dataset and publishes a new snapshot.
type RefreshFunc func(ctx context.Context) error

// Server is the small operational HTTP surface: liveness, the activity log,
// and a manual data refresh trigger.
type Server struct {
	repo    service.SnapshotProvider
	store   *activity.Store
	refresh RefreshFunc
	log     *slog.Logger
}

func NewServer(repo service.SnapshotProvider, store *activity.Store, refresh RefreshFunc, log *slog.Logger) *Server {
	return &Server{repo: repo, store: store, refresh: refresh, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/activity", s.handleActivity)
	r.Post("/refresh", s.handleRefresh)
	return r
}

// Start serves until the context is cancelled, then shuts down cleanly.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Error shutting down admin server", "error", err)
		}
	}()

	s.log.Info("Admin server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type healthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"snapshot_version,omitempty"`
	LoadedAt string `json:"loaded_at,omitempty"`
	Players  int    `json:"players"`
	Staff    int    `json:"staff"`
	Matches  int    `json:"matches"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "loading"}
	if snap := s.repo.Snapshot(); snap != nil {
		resp = healthResponse{
			Status:   "ok",
			Version:  snap.Version,
			LoadedAt: snap.LoadedAt.UTC().Format(time.RFC3339),
			Players:  len(snap.Players),
			Staff:    len(snap.Staff),
			Matches:  len(snap.Matches),
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.store.Recent(limit)
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresh == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "refresh not configured"})
		return
	}
	if err := s.refresh(r.Context()); err != nil {
		s.log.Error("Error refreshing dataset", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		s.log.Error("Error encoding response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
