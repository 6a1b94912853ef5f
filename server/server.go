// Package server exposes a playback session over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/screenroom/screenroom/catalog"
	"github.com/screenroom/screenroom/gate"
	"github.com/screenroom/screenroom/log"
	"github.com/screenroom/screenroom/resolver"
	"github.com/screenroom/screenroom/session"
	"github.com/screenroom/screenroom/source"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
)

type Resolver interface {
	Resolve(ctx context.Context, id string) (*source.Item, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, user session.User, cmd gate.Command) error
	PlayItem(ctx context.Context, user session.User, id string) error
}

type Snapshotter interface {
	Snapshot() session.Snapshot
}

type Searcher interface {
	Search(ctx context.Context, term string, params catalog.Params) (*catalog.Page, error)
}

// Deps are the collaborators behind the routes. A nil collaborator disables its routes.
type Deps struct {
	Resolver Resolver
	Gate     Dispatcher
	Session  Snapshotter
	Catalog  Searcher
}

// Server serves the watch redirect, the transport commands, the session
// snapshot and catalog searches.
type Server struct {
	deps    Deps
	handler http.Handler
}

func New(deps Deps) *Server {
	s := &Server{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	if deps.Resolver != nil {
		mux.HandleFunc("GET /watch", s.handleWatch)
	}
	if deps.Gate != nil {
		mux.HandleFunc("POST /commands/{name}", s.handleCommand)
	}
	if deps.Session != nil {
		mux.HandleFunc("GET /session", s.handleSession)
	}
	if deps.Catalog != nil {
		mux.HandleFunc("GET /catalog", s.handleCatalog)
	}

	s.handler = h2c.NewHandler(withLogging(mux), &http2.Server{})
	return s
}

// Handler returns the root handler. It accepts cleartext HTTP/2 as well as HTTP/1.1.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	log.Infof("serving on %s", ln.Addr())

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWatch redirects to the stream of the item named by v.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("v")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing v parameter"))
		return
	}

	item, err := s.deps.Resolver.Resolve(r.Context(), id)
	if err != nil {
		var rerr *resolver.ResolutionError
		if errors.As(err, &rerr) {
			writeError(w, http.StatusBadGateway, err)
		} else {
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	http.Redirect(w, r, item.URI, http.StatusFound)
}

// handleCommand dispatches one transport command. POST /commands/play?v=ID plays a specific item.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	cmd, err := gate.ParseCommand(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	user := userFrom(r)

	if id := r.URL.Query().Get("v"); cmd == gate.Play && id != "" {
		err = s.deps.Gate.PlayItem(r.Context(), user, id)
	} else {
		err = s.deps.Gate.Dispatch(r.Context(), user, cmd)
	}

	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, gate.ErrBusy):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, gate.ErrUnknownCommand):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, session.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Session.Snapshot())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var params catalog.Params
	if start := query.Get("start"); start != "" {
		n, err := strconv.Atoi(start)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid start %q", start))
			return
		}
		params.Start = n
	}

	page, err := s.deps.Catalog.Search(r.Context(), query.Get("q"), params)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func userFrom(r *http.Request) session.User {
	id := r.Header.Get(HeaderUserID)
	name := r.Header.Get(HeaderUserName)

	if id == "" {
		return session.NewUser(name)
	}

	if name == "" {
		name = id
	}
	return session.User{ID: id, Name: name}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("encode response: %v", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"proto":    r.Proto,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
