package web

import (
	"embed"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"checklist-cli/internal/store"
)

//go:embed templates/*.html
var assetsFS embed.FS

type ServerConfig struct {
	Dir          string
	Slots        map[string]string
	RolloverHour int

	// Watch reloads open pages when checklist files change on disk.
	Watch bool
	// PollInterval is how often the state database is checked for writes made
	// by other processes (CLI, TUI). Zero means one second; negative disables.
	PollInterval time.Duration

	Logger *log.Logger
	Now    func() time.Time
}

type Server struct {
	cfg     ServerConfig
	st      store.Store
	tmpl    *template.Template
	log     *log.Logger
	bc      *broadcaster
	watcher *store.Watcher
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errMissingDir
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Second
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"indent":  func(depth int) int { return depth * 18 },
		"signals": pageSignals,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	st := store.Store{Dir: cfg.Dir}
	if err := st.Ensure(); err != nil {
		return nil, err
	}

	srv := &Server{cfg: cfg, st: st, tmpl: tmpl, log: cfg.Logger}
	srv.bc = newBroadcaster()

	if cfg.Watch {
		w, err := st.NewWatcher()
		if err != nil {
			return nil, err
		}
		if err := w.Start(); err != nil {
			return nil, err
		}
		srv.watcher = w
		go srv.watchLoop(w)
	}
	if cfg.PollInterval > 0 {
		go srv.bc.pollLoop(st.StateModTime, cfg.PollInterval)
	}
	return srv, nil
}

// Close stops background watchers.
func (s *Server) Close() error {
	s.bc.Stop()
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /c/{name}", s.handleChecklistPage)
	mux.HandleFunc("POST /c/{name}/toggle", s.handleTogglePost)
	mux.HandleFunc("POST /c/{name}/reset", s.handleResetPost)

	mux.HandleFunc("GET /api/checklists", s.handleListChecklists)
	mux.HandleFunc("GET /api/checklist/{name}", s.handleGetChecklist)
	mux.HandleFunc("PUT /api/checklist/{name}", s.handlePutChecklist)
	mux.HandleFunc("GET /api/checklist/{name}/state", s.handleState)
	mux.HandleFunc("POST /api/checklist/{name}/check", s.handleCheck)
	mux.HandleFunc("POST /api/checklist/{name}/reset", s.handleReset)
	mux.HandleFunc("GET /api/checklist/{name}/next", s.handleMove(true))
	mux.HandleFunc("GET /api/checklist/{name}/prev", s.handleMove(false))
	mux.HandleFunc("GET /api/checklist/{name}/runs", s.handleRuns)
	mux.HandleFunc("GET /api/checklist/{name}/events", s.handleEvents)
	mux.HandleFunc("POST /api/log-time", s.handleLogTime)
	return s.logRequests(mux)
}

func (s *Server) watchLoop(w *store.Watcher) {
	for name := range w.Changes {
		s.log.Printf("checklist changed on disk: %s", name)
		s.bc.notify(name)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.log.Printf("render %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	ref := strings.TrimSpace(r.Header.Get("Referer"))
	if ref != "" {
		http.Redirect(w, r, ref, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, fallback, http.StatusSeeOther)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the logging middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
