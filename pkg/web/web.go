// Package web serves calendar views, event details, the filter catalog and
// iCalendar feeds over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/detail"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/ics"
	"tableflip.dev/worldsync/pkg/navigation"
)

// Server provides the HTTP API.
type Server struct {
	service   *app.Service
	weekStart time.Weekday
	now       func() time.Time
	logger    *log.Logger
	mux       *http.ServeMux
}

// Options configures a Server.
type Options struct {
	WeekStart time.Weekday
	// Now anchors requests without ?on=. Nil is time.Now.
	Now    func() time.Time
	Logger *log.Logger
}

// NewServer constructs a new Server.
func NewServer(service *app.Service, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		service:   service,
		weekStart: opts.WeekStart,
		now:       opts.Now,
		logger:    opts.Logger,
		mux:       http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("GET /api/events/{id}", s.handleEvent)
	s.mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	s.mux.HandleFunc("GET /api/legend", s.handleLegend)
	s.mux.HandleFunc("GET /calendar.ics", s.handleFeed)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string, onListening func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if onListening != nil {
		onListening(ln.Addr())
	}

	httpSrv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// GET /api/events?view=week&on=2024-11-01&country=us,in&religion=&type=
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state, err := s.viewState(q.Get("view"), q.Get("on"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	engine, err := s.service.Engine(r.Context(), selection(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, engine.Snap(state, s.weekStart))
}

// GET /api/events/{id} and /api/events/{id}.ics
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	asICS := strings.HasSuffix(id, ".ics")
	if asICS {
		id = strings.TrimSuffix(id, ".ics")
	}

	e, err := s.service.Event(r.Context(), id)
	switch {
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "event not found: "+id)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if asICS {
		s.writeICS(w, id+".ics", []event.Event{e})
		return
	}
	s.writeJSON(w, http.StatusOK, detail.NewCard(e))
}

// GET /api/catalog?search=
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	st := filter.New(s.service.CatalogOrDefault())
	st.Preselect(selection(r))
	st.SetSearch(r.URL.Query().Get("search"))
	s.writeJSON(w, http.StatusOK, st.Listing())
}

// GET /api/legend?view=&on= counts filtered events per type in the view.
func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state, err := s.viewState(q.Get("view"), q.Get("on"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	first, last := calendar.Range(state, s.weekStart)
	report, err := s.service.Report(r.Context(), selection(r), first, last)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, calendar.CountedLegend(report.Count))
}

// GET /calendar.ics?country=&religion=&type= is the filtered feed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	engine, err := s.service.Engine(r.Context(), selection(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeICS(w, "calendar.ics", engine.Events())
}

func (s *Server) viewState(view, on string) (navigation.ViewState, error) {
	mode := navigation.ModeMonth
	if strings.TrimSpace(view) != "" {
		var err error
		if mode, err = navigation.ParseMode(view); err != nil {
			return navigation.ViewState{}, err
		}
	}
	current := event.Today(s.now)
	if strings.TrimSpace(on) != "" {
		var err error
		if current, err = event.ParseDate(on); err != nil {
			return navigation.ViewState{}, err
		}
	}
	return navigation.ViewState{Mode: mode, Current: current}, nil
}

// selection reads comma separated or repeated filter parameters.
func selection(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.Selection{
		Countries:  splitParam(q["country"]),
		Religions:  splitParam(q["religion"]),
		EventTypes: splitParam(q["type"]),
	}
}

func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (s *Server) writeICS(w http.ResponseWriter, name string, events []event.Event) {
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if err := ics.Export(w, events); err != nil {
		s.logger.Printf("web: write %s: %v", name, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("web: write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errResp{Error: msg})
}
