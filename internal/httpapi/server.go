package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"retro-taskmaster/internal/service"
)

// Server exposes the task services over JSON and a websocket change feed.
type Server struct {
	tasks      *service.TaskService
	categories *service.CategoryService
	summary    *service.SummaryService
	hub        *Hub
	origins    []string
	now        func() time.Time
}

func NewServer(
	tasks *service.TaskService,
	categories *service.CategoryService,
	summary *service.SummaryService,
	hub *Hub,
	allowedOrigins []string,
) *Server {
	return &Server{
		tasks:      tasks,
		categories: categories,
		summary:    summary,
		hub:        hub,
		origins:    allowedOrigins,
		now:        time.Now,
	}
}

// Handler builds the router wrapped in CORS.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.getTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.updateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{id:[0-9]+}", s.deleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{id:[0-9]+}/toggle", s.toggleTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id:[0-9]+}/flip", s.flipTask).Methods(http.MethodPost)

	api.HandleFunc("/categories", s.listCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories", s.createCategory).Methods(http.MethodPost)
	api.HandleFunc("/categories/{name}", s.renameCategory).Methods(http.MethodPut)
	api.HandleFunc("/categories/{name}", s.deleteCategory).Methods(http.MethodDelete)
	api.HandleFunc("/categories/{name}/master", s.assignMaster).Methods(http.MethodPut)

	api.HandleFunc("/master-categories", s.listMasters).Methods(http.MethodGet)
	api.HandleFunc("/master-categories", s.createMaster).Methods(http.MethodPost)
	api.HandleFunc("/master-categories/{id:[0-9]+}", s.deleteMaster).Methods(http.MethodDelete)

	api.HandleFunc("/palette", s.listPalette).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.getSummary).Methods(http.MethodGet)
	api.HandleFunc("/ws", s.serveWS)

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] HTTP server listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("[info] HTTP server shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"state": "ok"})
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summary.Summary(r.Context(), s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryView{
		Date:      summary.Date,
		Overdue:   taskViews(summary.Overdue),
		DueSoon:   taskViews(summary.DueSoon),
		Later:     taskViews(summary.Later),
		Open:      summary.Open(),
		Completed: summary.Completed,
	})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}
	s.hub.Attach(conn)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.origins, "*") {
		return true
	}
	return slices.Contains(s.origins, origin)
}

func (s *Server) publish(eventType string) {
	if s.hub != nil {
		s.hub.Publish(eventType)
	}
}
