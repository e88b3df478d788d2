package api

import (
	"context"
	"net/http"

	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
)

type dimensionsRequest struct {
	Dimensions []string `json:"dimensions"`
}

type toggleRequest struct {
	Measure string `json:"measure"`
}

func (api *API) createDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f reporting.Filters
	if err := decodeBody(r, &f); err != nil {
		handleError(ctx, w, http.StatusBadRequest, err, nil)
		return
	}

	rows, metrics, err := api.fetch(ctx, &f)
	if err != nil {
		handleError(ctx, w, http.StatusBadGateway, err, log.Data{"filters": f})
		return
	}

	id, err := api.generator.UniqueID()
	if err != nil {
		handleError(ctx, w, http.StatusInternalServerError, err, nil)
		return
	}

	now := api.generator.Timestamp()
	d := newDashboard(id, now, api.engine)
	d.load(f, rows, metrics)
	evicted := api.dashboards.Add(d, now)

	log.Info(ctx, "dashboard created", log.Data{"dashboard_id": id, "filters": f, "rows": len(rows.Rows), "evicted": evicted})
	writeJSON(ctx, w, http.StatusCreated, d.render())
}

func (api *API) getDashboard(w http.ResponseWriter, r *http.Request) {
	api.withDashboard(w, r, func(ctx context.Context, d *Dashboard) {
		writeJSON(ctx, w, http.StatusOK, d.render())
	})
}

func (api *API) deleteDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	if !api.dashboards.Delete(id) {
		handleError(ctx, w, http.StatusNotFound, ErrDashboardNotFound, log.Data{"dashboard_id": id})
		return
	}
	log.Info(ctx, "dashboard deleted", log.Data{"dashboard_id": id})
	w.WriteHeader(http.StatusNoContent)
}

// putFilters re-fetches the dashboard data. The new snapshot is shown
// ungrouped until the next apply.
func (api *API) putFilters(w http.ResponseWriter, r *http.Request) {
	api.withDashboard(w, r, func(ctx context.Context, d *Dashboard) {
		var f reporting.Filters
		if err := decodeBody(r, &f); err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, nil)
			return
		}

		rows, metrics, err := api.fetch(ctx, &f)
		if err != nil {
			handleError(ctx, w, http.StatusBadGateway, err, log.Data{"dashboard_id": d.id, "filters": f})
			return
		}

		d.load(f, rows, metrics)
		writeJSON(ctx, w, http.StatusOK, d.render())
	})
}

func (api *API) putDimensions(w http.ResponseWriter, r *http.Request) {
	api.withDashboard(w, r, func(ctx context.Context, d *Dashboard) {
		var req dimensionsRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, nil)
			return
		}

		if err := api.validateDimensions(req.Dimensions); err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, log.Data{"dashboard_id": d.id})
			return
		}
		sel, err := pivot.NewSelection(req.Dimensions, nil)
		if err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, log.Data{"dashboard_id": d.id})
			return
		}

		d.setDimensions(sel)
		writeJSON(ctx, w, http.StatusOK, d.render())
	})
}

func (api *API) toggleMeasure(w http.ResponseWriter, r *http.Request) {
	api.withDashboard(w, r, func(ctx context.Context, d *Dashboard) {
		var req toggleRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, nil)
			return
		}
		if req.Measure == "" {
			handleError(ctx, w, http.StatusBadRequest, ErrMissingMeasure, nil)
			return
		}

		if err := d.toggle(req.Measure); err != nil {
			handleError(ctx, w, http.StatusBadRequest, err, log.Data{"dashboard_id": d.id})
			return
		}
		writeJSON(ctx, w, http.StatusOK, d.render())
	})
}

func (api *API) applyDashboard(w http.ResponseWriter, r *http.Request) {
	api.withDashboard(w, r, func(ctx context.Context, d *Dashboard) {
		status := d.apply()
		log.Info(ctx, "dashboard selection applied", log.Data{
			"dashboard_id": d.id,
			"status":       status,
		})
		writeJSON(ctx, w, http.StatusOK, d.render())
	})
}

// withDashboard runs fn holding the lock of the dashboard named in the path
func (api *API) withDashboard(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, d *Dashboard)) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	d, ok := api.dashboards.Get(id, api.generator.Timestamp())
	if !ok {
		handleError(ctx, w, http.StatusNotFound, ErrDashboardNotFound, log.Data{"dashboard_id": id})
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	fn(ctx, d)
}

// fetch gets the rows and stats for the filters, applying the configured
// row limit when the caller did not set one
func (api *API) fetch(ctx context.Context, f *reporting.Filters) (*reporting.RowsResponse, reporting.Metrics, error) {
	if f.Limit <= 0 {
		f.Limit = api.rowLimit
	}
	rows, stats, err := reporting.Fetch(ctx, api.reporting, *f)
	if err != nil {
		return nil, reporting.Metrics{}, err
	}
	return rows, reporting.NewMetrics(stats, api.population), nil
}
