// Package http serves the mirror over HTTP: filtered package indexes under
// /simple/ and the mirror tree everywhere else.
package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pyroxy"
)

// Server routes requests to the package index service and the mirror trees.
type Server struct {
	// Indexes serves /simple/<package>/ pages.
	Indexes pyroxy.PackageIndexService

	// Web is the mirror web root.
	Web pyroxy.FileTree

	// Packages serves /packages/ when set. Otherwise those paths resolve
	// under Web like any other path.
	Packages pyroxy.FileTree

	// Limiter rejects clients over their request rate. Nil disables
	// rate limiting.
	Limiter *ClientLimiter

	Logger *slog.Logger
}

// Handler returns the server's routes wrapped in request logging and rate
// limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /simple/{package}/{$}", s.handlePackageIndex)
	mux.HandleFunc("GET /simple/{package}/index.html", s.handlePackageIndex)
	if s.Packages != nil {
		mux.HandleFunc("GET /packages", s.handlePackages)
		mux.HandleFunc("GET /packages/{path...}", s.handlePackages)
	}
	mux.HandleFunc("GET /{path...}", s.handleStatic)

	var handler http.Handler = mux
	if s.Limiter != nil {
		handler = s.Limiter.Middleware(handler)
	}
	return s.logRequests(handler)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Server) handlePackageIndex(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("package")

	idx, err := s.Indexes.PackageIndex(r.Context(), name)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.logger().Info("serving package index", "package", name, "filtered", idx.Filtered)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", ETag(idx.Body))
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(idx.Body))
}

func (s *Server) handlePackages(w http.ResponseWriter, r *http.Request) {
	s.serveTree(w, r, s.Packages, "/packages/", treePath(r, "/packages"))
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	s.serveTree(w, r, s.Web, "/", treePath(r, ""))
}

// treePath returns the request path below prefix, keeping a trailing slash
// so directory requests can be told apart from file requests.
func treePath(r *http.Request, prefix string) string {
	rel := strings.TrimPrefix(r.URL.Path, prefix)
	return strings.TrimPrefix(rel, "/")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.logger().Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"remote", r.RemoteAddr,
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}
