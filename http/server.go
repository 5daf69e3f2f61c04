package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docsearch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout bounds how long ListenAndServe waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// Server previews a built site: static output, assembled pages and a search
// API backed by the sections' search databases.
type Server struct {
	dir    string
	loader docsearch.IndexLoader
	limit  int
	logger *slog.Logger

	router chi.Router
	files  http.Handler
}

// NewServer creates a server for the output directory dir. Databases are
// loaded through loader by their site-relative URL, e.g. "/docs/db.json".
// A nil logger discards request logs.
func NewServer(dir string, loader docsearch.IndexLoader, limit int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		dir:    dir,
		loader: loader,
		limit:  limit,
		logger: logger,
		files:  http.FileServer(http.Dir(dir)),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", healthzHandler)
	r.Get("/api/search", s.searchHandler)
	r.Get("/*", s.staticHandler)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", addr, "dir", s.dir)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}

type searchResponse struct {
	Query     string         `json:"query"`
	Total     int            `json:"total"`
	Truncated bool           `json:"truncated"`
	Results   []searchResult `json:"results"`
}

type searchResult struct {
	Href    string `json:"href"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Score   int    `json:"score"`
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	query := r.URL.Query().Get("q")

	if !validSection(section) {
		s.writeError(w, r, docsearch.Errorf(docsearch.EINVALID, "invalid section %q", section))
		return
	}

	resp := searchResponse{Query: query, Results: []searchResult{}}
	if query == "" {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	idx, err := s.loader.Load(r.Context(), "/"+section+"/"+docsearch.SearchDatabaseFile)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := docsearch.Search(idx, query, s.limit)
	resp.Total = res.Total
	resp.Truncated = res.Truncated()
	for _, m := range res.Matches {
		title, preview := docsearch.Highlight(m).Render(docsearch.HTMLMarkup)
		resp.Results = append(resp.Results, searchResult{
			Href:    m.Record.Href,
			Title:   title,
			Preview: preview,
			Score:   m.Score,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// staticHandler serves an assembled page for extensionless paths that have a
// compiled page, and plain files otherwise.
func (s *Server) staticHandler(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if name != "/" && path.Ext(name) == "" {
		if _, err := os.Stat(s.file(name + ".html")); err == nil {
			s.pageHandler(w, r, name)
			return
		}
	}
	s.files.ServeHTTP(w, r)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request, href string) {
	body, err := os.ReadFile(s.file(href + ".html"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	section, _, _ := strings.Cut(strings.TrimPrefix(href, "/"), "/")
	p := page{
		Section: section,
		Title:   strings.TrimSpace(s.optional(href + ".name.txt")),
		Nav:     s.optional(href + ".nav.html"),
		TOC:     s.optional(href + ".toc.html"),
		Body:    string(body),
	}
	if p.Title == "" {
		p.Title = docsearch.UntitledPage
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, p); err != nil {
		s.logger.Error("render page", "href", href, "err", err)
	}
}

// optional returns the contents of an output file, or "" if it is missing.
func (s *Server) optional(name string) string {
	data, err := os.ReadFile(s.file(name))
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Server) file(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(path.Clean("/"+name)))
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch docsearch.ErrorCode(err) {
	case docsearch.EINVALID:
		status = http.StatusBadRequest
	case docsearch.ENOTFOUND:
		status = http.StatusNotFound
	}
	if errors.Is(err, os.ErrNotExist) {
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	msg := docsearch.ErrorMessage(err)
	if status == http.StatusNotFound && docsearch.ErrorCode(err) != docsearch.ENOTFOUND {
		msg = "Not found."
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// validSection reports whether name is a single path segment.
func validSection(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
