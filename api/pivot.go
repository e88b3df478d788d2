package api

import (
	"net/http"

	"github.com/ONSdigital/log.go/v2/log"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
)

// CatalogResponse lists the dimensions and measures a pivot can use
type CatalogResponse struct {
	Dimensions      []pivot.DimensionOption `json:"dimensions"`
	Measures        []pivot.MeasureDef      `json:"measures"`
	DefaultMeasures []string                `json:"default_measures"`
	AllOption       string                  `json:"all_option"`
	MaxDimensions   int                     `json:"max_dimensions"`
}

// PivotRequest is a stateless pivot over the posted rows. Without measures
// the catalog defaults are used.
type PivotRequest struct {
	Rows       []pivot.Row `json:"rows"`
	Columns    []string    `json:"columns"`
	Dimensions []string    `json:"dimensions"`
	Measures   []string    `json:"measures"`
}

// PivotResponse is the result of a stateless pivot
type PivotResponse struct {
	Outcome string       `json:"outcome"`
	Columns []string     `json:"columns"`
	Data    []pivot.Row  `json:"data"`
	Status  pivot.Status `json:"status"`
}

func (api *API) getCatalog(w http.ResponseWriter, r *http.Request) {
	c := api.engine.Catalog()
	writeJSON(r.Context(), w, http.StatusOK, CatalogResponse{
		Dimensions:      c.Dimensions,
		Measures:        c.Measures,
		DefaultMeasures: c.DefaultMeasures().Names(c),
		AllOption:       pivot.MeasureAll,
		MaxDimensions:   pivot.MaxDimensions,
	})
}

func (api *API) postPivot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PivotRequest
	if err := decodeBody(r, &req); err != nil {
		handleError(ctx, w, http.StatusBadRequest, err, nil)
		return
	}

	sel, err := api.selection(req.Dimensions, req.Measures)
	if err != nil {
		handleError(ctx, w, http.StatusBadRequest, err, log.Data{"dimensions": req.Dimensions, "measures": req.Measures})
		return
	}

	res, err := api.engine.Aggregate(req.Rows, req.Columns, sel)
	if err != nil {
		handleError(ctx, w, http.StatusBadRequest, err, nil)
		return
	}

	data := res.Data
	if data == nil {
		data = []pivot.Row{}
	}
	writeJSON(ctx, w, http.StatusOK, PivotResponse{
		Outcome: res.Outcome.String(),
		Columns: res.Columns,
		Data:    data,
		Status:  res.Status,
	})
}

// selection validates the dimensions against the catalog and builds a
// selection. An empty measure list selects the catalog defaults.
func (api *API) selection(dims, measures []string) (pivot.Selection, error) {
	c := api.engine.Catalog()
	if err := api.validateDimensions(dims); err != nil {
		return pivot.Selection{}, err
	}

	ms := c.DefaultMeasures()
	if len(measures) > 0 {
		var err error
		if ms, err = pivot.MeasureSetFromNames(c, measures); err != nil {
			return pivot.Selection{}, err
		}
	}
	return pivot.NewSelection(dims, ms)
}

func (api *API) validateDimensions(dims []string) error {
	c := api.engine.Catalog()
	for _, d := range dims {
		if d != "" && !c.HasDimension(d) {
			return &dimensionError{dimension: d}
		}
	}
	return nil
}

type dimensionError struct {
	dimension string
}

func (e *dimensionError) Error() string {
	return ErrUnknownDimension.Error() + ": " + e.dimension
}

func (e *dimensionError) Unwrap() error {
	return ErrUnknownDimension
}

func (e *dimensionError) LogData() map[string]interface{} {
	return map[string]interface{}{"dimension": e.dimension}
}
