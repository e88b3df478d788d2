package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"

	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
)

// API serves the pivot catalog, stateless pivots and dashboards
type API struct {
	Router     *mux.Router
	engine     *pivot.Engine
	reporting  ReportingClient
	generator  Generator
	dashboards *DashboardStore
	population int64
	rowLimit   int
}

// Setup registers the API routes on the router and returns the API
func Setup(ctx context.Context, r *mux.Router, e *pivot.Engine, rc ReportingClient, g Generator, cfg *config.Config) *API {
	api := &API{
		Router:     r,
		engine:     e,
		reporting:  rc,
		generator:  g,
		dashboards: NewDashboardStore(cfg.DashboardTTL, cfg.MaxDashboards),
		population: cfg.StatePopulation,
		rowLimit:   cfg.ReportRowLimit,
	}

	r.HandleFunc("/catalog", api.getCatalog).Methods(http.MethodGet)
	r.HandleFunc("/pivot", api.postPivot).Methods(http.MethodPost)
	r.HandleFunc("/dashboards", api.createDashboard).Methods(http.MethodPost)
	r.HandleFunc("/dashboards/{id}", api.getDashboard).Methods(http.MethodGet)
	r.HandleFunc("/dashboards/{id}", api.deleteDashboard).Methods(http.MethodDelete)
	r.HandleFunc("/dashboards/{id}/filters", api.putFilters).Methods(http.MethodPut)
	r.HandleFunc("/dashboards/{id}/dimensions", api.putDimensions).Methods(http.MethodPut)
	r.HandleFunc("/dashboards/{id}/measures/toggle", api.toggleMeasure).Methods(http.MethodPost)
	r.HandleFunc("/dashboards/{id}/apply", api.applyDashboard).Methods(http.MethodPost)

	log.Info(ctx, "api routes registered", log.Data{
		"population":     cfg.StatePopulation,
		"row_limit":      cfg.ReportRowLimit,
		"dashboard_ttl":  cfg.DashboardTTL,
		"max_dashboards": cfg.MaxDashboards,
	})
	return api
}

// Dashboards returns the dashboard store
func (api *API) Dashboards() *DashboardStore {
	return api.dashboards
}

type errorResponse struct {
	Errors []string `json:"errors"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error(ctx, "failed to marshal response body", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		log.Error(ctx, "failed to write response body", err)
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, status int, err error, logData log.Data) {
	if logData == nil {
		logData = log.Data{}
	}
	var dl dataLogger
	if errors.As(err, &dl) {
		for k, v := range dl.LogData() {
			logData[k] = v
		}
	}
	logData["response_status"] = status

	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", err, logData)
	} else {
		log.Warn(ctx, "request rejected: "+err.Error(), logData)
	}

	writeJSON(ctx, w, status, errorResponse{Errors: []string{err.Error()}})
}

type dataLogger interface {
	LogData() map[string]interface{}
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidBody
	}
	return nil
}
