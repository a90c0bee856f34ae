package mock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studiowebux/postboard/internal/types"
)

// maxLogs is the size of the request log ring
const maxLogs = 1000

// Server is the development backend for the board
type Server struct {
	config     *Config
	store      Store
	guids      *GUIDPool
	logger     *slog.Logger
	httpServer *http.Server
	listener   net.Listener
	logs       []RequestLog
	logsMutex  sync.RWMutex
}

// NewServer creates a backend serving store
func NewServer(config *Config, store Store, logger *slog.Logger) *Server {
	config.applyDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		config: config,
		store:  store,
		guids:  NewGUIDPool(config.GUIDPoolSize, logger),
		logger: logger,
		logs:   make([]RequestLog, 0),
	}
}

// Handler returns the router serving the board API
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Route(s.config.APIBasePath, func(r chi.Router) {
		r.Get("/", s.handleListPosts)
		r.Post("/", s.handleCreatePost)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetPost)
			r.Put("/", s.handleUpdatePost)
			r.Delete("/", s.handleDeletePost)
			r.Get("/comments", s.handleListComments)
			r.Post("/comments", s.handleCreateComment)
		})
	})

	r.Get(s.config.GUIDPath, s.handleGUID)

	return r
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("backend server error", "error", err)
		}
	}()

	s.logger.Info("backend listening", "address", s.GetAddress(), "storage", s.config.Storage)
	return nil
}

// Stop shuts the server down and stops the GUID producer
func (s *Server) Stop() error {
	defer s.guids.Stop()

	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server address
func (s *Server) GetAddress() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var in types.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	post, err := s.store.CreatePost(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in types.PostInput
	if !decodeBody(w, r, &in) {
		return
	}
	post, err := s.store.UpdatePost(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeletePost(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	comments, err := s.store.ListComments(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in types.CommentInput
	if !decodeBody(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		writeText(w, http.StatusBadRequest, "Comment content is required")
		return
	}
	comment, err := s.store.AddComment(r.Context(), id, in.Content)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleGUID(w http.ResponseWriter, r *http.Request) {
	guid, err := s.guids.Next(r.Context())
	if err != nil {
		writeText(w, http.StatusServiceUnavailable, "GUID service unavailable")
		return
	}
	writeText(w, http.StatusOK, guid)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrPostNotFound) {
		writeText(w, http.StatusNotFound, "Post not found")
		return
	}
	s.logger.Error("store failure", "error", err)
	writeText(w, http.StatusInternalServerError, "Internal server error")
}

// pathID reads the {id} parameter; ids are positive integers
func pathID(w http.ResponseWriter, r *http.Request) (types.PostID, bool) {
	raw := chi.URLParam(r, "id")
	if n, err := strconv.ParseInt(raw, 10, 64); err != nil || n <= 0 {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("Invalid post id: %s", raw))
		return "", false
	}
	return types.PostID(raw), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, text)
}

// logMiddleware records every request in the log ring and the structured log
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", duration,
		)

		if s.config.Logging {
			s.logRequest(RequestLog{
				Timestamp: start,
				Method:    r.Method,
				Path:      r.URL.Path,
				Body:      string(body),
				Route:     route,
				Status:    status,
				Duration:  duration,
			})
		}
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(log RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, log)

	// Keep only the last maxLogs entries
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

// GetLogs returns all logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// ClearLogs clears all logged requests
func (s *Server) ClearLogs() {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = make([]RequestLog, 0)
}

// Calls returns "METHOD path" for each logged request, oldest first
func (s *Server) Calls() []string {
	logs := s.GetLogs()
	calls := make([]string, len(logs))
	for i, l := range logs {
		calls[i] = l.Method + " " + l.Path
	}
	return calls
}
