package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgrundel/timelane/pkg/cache"
	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/layout"
	"github.com/mgrundel/timelane/pkg/observability"
	"github.com/mgrundel/timelane/pkg/render"
	"github.com/mgrundel/timelane/pkg/schedule"
	"github.com/mgrundel/timelane/pkg/snapshot"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createRequest is the POST /api/schedules body. A client-chosen id is
// optional; one is generated when absent.
type createRequest struct {
	ID string `json:"id,omitempty"`
	schedule.Payload
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	s.mu.Lock()
	var id string
	var err error
	if req.ID != "" {
		id = req.ID
		err = s.manager.CreateWithID(req.ID, req.Payload)
	} else {
		id, err = s.manager.Create(req.Payload)
	}
	if err != nil {
		s.mu.Unlock()
		observability.Repository().OnCreateRejected(r.Context(), string(errors.GetCode(err)))
		s.respondError(w, err)
		return
	}
	created, _ := s.manager.Get(id)
	s.persist(r.Context())
	s.mu.Unlock()

	observability.Repository().OnCreate(r.Context(), id, created.Level)
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sch, ok := s.manager.Get(id)
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", id))
		return
	}
	s.respondJSON(w, http.StatusOK, sch)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	sch, ok := s.manager.Get(id)
	if !ok {
		s.mu.Unlock()
		s.respondError(w, errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", id))
		return
	}
	if err := s.manager.Delete(id); err != nil {
		s.mu.Unlock()
		s.respondError(w, err)
		return
	}
	s.persist(r.Context())
	s.mu.Unlock()

	observability.Repository().OnDelete(r.Context(), id, len(sch.Children))
	s.respondJSON(w, http.StatusNoContent, nil)
}

type addParentsRequest struct {
	Parents []string `json:"parents"`
}

func (s *Server) handleAddParents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req addParentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	s.mu.Lock()
	if err := s.manager.AddParents(id, req.Parents); err != nil {
		s.mu.Unlock()
		s.respondError(w, err)
		return
	}
	updated, _ := s.manager.Get(id)
	s.persist(r.Context())
	s.mu.Unlock()

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	opts, err := queryOptions(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	results := s.manager.Query(opts)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"schedules": results,
		"count":     len(results),
	})
}

// queryOptions parses list filters from the URL query. Times use
// RFC 3339.
func queryOptions(r *http.Request) (schedule.QueryOptions, error) {
	var opts schedule.QueryOptions
	q := r.URL.Query()

	if name := q.Get("name"); name != "" {
		opts.Name = &name
	}
	if v := q.Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse start %q", v)
		}
		opts.Start = &t
	}
	if v := q.Get("stop"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse stop %q", v)
		}
		opts.Stop = &t
	}
	if v := q.Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse level %q", v)
		}
		opts.Level = &level
	}
	if v := q.Get("exclusive"); v != "" {
		exclusive, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse exclusive %q", v)
		}
		opts.Exclusive = &exclusive
	}

	return opts, nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.layoutConfig(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	ctx := r.Context()
	stateHash := snapshot.StateHash(s.manager)
	key := s.keyer.LayoutKey(stateHash, cache.LayoutKeyOpts{
		Mode:               string(cfg.Mode),
		AggregateThreshold: cfg.AggregateThreshold,
		MaxLanesPerLevel:   cfg.MaxLanesPerLevel,
	})

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "layout")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	items := layout.FromSchedules(s.manager.All())
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, string(cfg.Mode), len(items))
	result, err := layout.Compute(items, cfg)
	observability.Layout().OnLayoutComplete(ctx, string(cfg.Mode), time.Since(start), err)
	if err != nil {
		s.respondError(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	if err := s.cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		s.logger.Warn("cache layout", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// layoutConfig builds engine options from the configured defaults plus
// per-request query overrides.
func (s *Server) layoutConfig(r *http.Request) (layout.Config, error) {
	cfg := s.cfg.LayoutOptions()
	q := r.URL.Query()

	if v := q.Get("mode"); v != "" {
		cfg.Mode = layout.Mode(v)
	}
	if v := q.Get("aggregate_threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse aggregate_threshold %q", v)
		}
		cfg.AggregateThreshold = n
	}
	if v := q.Get("max_lanes_per_level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse max_lanes_per_level %q", v)
		}
		cfg.MaxLanesPerLevel = n
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))

	dot := render.ToDOT(s.manager.All(), render.Options{Detailed: detailed})

	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dot))
	case "svg":
		ctx := r.Context()
		key := s.keyer.RenderKey(cache.Hash([]byte(dot)), cache.RenderKeyOpts{Format: format})
		if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			w.Header().Set("Content-Type", "image/svg+xml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
		observability.Cache().OnCacheMiss(ctx, "render")

		svg, err := render.RenderSVG(dot)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if err := s.cache.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
			s.logger.Warn("cache render", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "render", len(svg))
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(svg)
	default:
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput,
			"unknown render format %q (must be dot or svg)", format))
	}
}
