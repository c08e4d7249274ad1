// Package server exposes the covid overview dashboard over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/liavyona/covid-overview/pkg"
)

// DashboardLoader is the part of *pkg.Loader the handlers use.
type DashboardLoader interface {
	Load(ctx context.Context) (*pkg.Dashboard, error)
	Current() (*pkg.Dashboard, error)
}

type Handler struct {
	loader    DashboardLoader
	refreshes singleflight.Group
}

func NewHandler(loader DashboardLoader) *Handler {
	return &Handler{loader: loader}
}

// NewRouter wires the handlers. gatherer backs /metrics when non-nil.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/overview", h.GetOverview)
	r.Post("/overview/refresh", h.RefreshOverview)
	r.Get("/overview/regions/{index}", h.GetRegion)

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOverview returns the current dashboard, loading it on first use.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.loader.Current()
	if errors.Is(err, pkg.ErrNoOverview) {
		dashboard, err = h.refresh(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// RefreshOverview fetches a new dashboard, replacing the current one.
func (h *Handler) RefreshOverview(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.refresh(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// GetRegion returns the record behind the chart entry at {index}.
func (h *Handler) GetRegion(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "index must be an integer"})
		return
	}
	dashboard, err := h.loader.Current()
	if err != nil {
		writeError(w, err)
		return
	}
	overview, err := dashboard.Select(index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// refresh coalesces concurrent callers onto one outbound fetch. The fetch
// is detached from any single request so one client going away does not
// fail the others.
func (h *Handler) refresh(ctx context.Context) (*pkg.Dashboard, error) {
	ch := h.refreshes.DoChan("overview", func() (interface{}, error) {
		return h.loader.Load(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pkg.Dashboard), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pkg.ErrNoSelection):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, pkg.ErrNoOverview):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	case pkg.ErrorKind(err) == "transport", pkg.ErrorKind(err) == "decode":
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Kind: pkg.ErrorKind(err)})
	default:
		log.Err(err).Msg("Unexpected error serving overview")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: "internal"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}
