package pivot

// View holds the table currently shown for a row snapshot. Each Apply
// recomputes from the rows it is given and replaces the displayed table
// wholesale; an empty row set leaves it untouched.
type View struct {
	engine  *Engine
	data    []Row
	columns []string
	applied []string
	status  Status
}

// NewView returns an empty view
func NewView(e *Engine) *View {
	return &View{engine: e}
}

// Reset shows rows ungrouped and forgets any applied dimensions
func (v *View) Reset(rows []Row, columns []string) {
	v.data = rows
	v.columns = columns
	v.applied = nil
	v.status = Status{}
}

// Apply aggregates rows for sel and updates the view. Errors are reported as
// an error-level status and leave the view unchanged.
func (v *View) Apply(rows []Row, columns []string, sel Selection) Status {
	res, err := v.engine.Aggregate(rows, columns, sel)
	if err != nil {
		v.status = Status{Level: LevelError, Message: err.Error()}
		return v.status
	}

	v.status = res.Status
	if res.Outcome == OutcomeNoData {
		return v.status
	}

	v.data = res.Data
	v.columns = res.Columns
	if res.Outcome == OutcomeGrouped {
		v.applied = sel.ActiveDimensions()
	} else {
		v.applied = nil
	}
	return v.status
}

// Data returns the displayed rows
func (v *View) Data() []Row { return v.data }

// Columns returns the displayed columns
func (v *View) Columns() []string { return v.columns }

// AppliedDimensions returns the dimensions the displayed table is grouped by
func (v *View) AppliedDimensions() []string { return v.applied }

// Status returns the status of the last Apply
func (v *View) Status() Status { return v.status }
