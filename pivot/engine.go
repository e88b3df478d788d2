package pivot

import (
	"fmt"
	"sort"
)

// Outcome describes which path an aggregation took
type Outcome int

// Possible outcomes of Aggregate
const (
	OutcomeNoData Outcome = iota
	OutcomeUngrouped
	OutcomeGrouped
)

var outcomeNames = map[Outcome]string{
	OutcomeNoData:    "no_data",
	OutcomeUngrouped: "ungrouped",
	OutcomeGrouped:   "grouped",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// StatusLevel classifies a Status message
type StatusLevel string

// Status levels
const (
	LevelInfo    StatusLevel = "info"
	LevelSuccess StatusLevel = "success"
	LevelError   StatusLevel = "error"
)

// Status is the message shown to the user after an aggregation
type Status struct {
	Level   StatusLevel `json:"type"`
	Message string      `json:"message"`
}

// Status messages
const (
	MsgNoData       = "No data available to apply dimensions"
	MsgNoDimensions = "No dimensions selected. Showing original data."
)

// Result is the output of one aggregation
type Result struct {
	Outcome Outcome
	Data    []Row
	Columns []string
	Groups  []*Group
	Status  Status
}

// Engine pivots flat row sets using the measures declared in a catalog
type Engine struct {
	catalog *Catalog
}

// NewEngine returns an engine for the given catalog
func NewEngine(c *Catalog) *Engine {
	return &Engine{catalog: c}
}

// Catalog returns the engine's catalog
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Aggregate groups rows by the selection's active dimensions and computes the
// selected measures per group. The input rows are never modified.
//
// An empty row set yields OutcomeNoData with no data; callers holding a
// previous result should keep it. A selection without active dimensions
// yields the input rows and columns unchanged.
func (e *Engine) Aggregate(rows []Row, columns []string, sel Selection) (*Result, error) {
	measures, err := e.selectedMeasures(sel.Measures)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &Result{
			Outcome: OutcomeNoData,
			Status:  Status{Level: LevelInfo, Message: MsgNoData},
		}, nil
	}

	dims := sel.ActiveDimensions()
	if len(dims) == 0 {
		return &Result{
			Outcome: OutcomeUngrouped,
			Data:    rows,
			Columns: columns,
			Status:  Status{Level: LevelInfo, Message: MsgNoDimensions},
		}, nil
	}

	var sums []MeasureDef
	for _, m := range measures {
		if m.Kind == KindSum {
			sums = append(sums, m)
		}
	}

	gr := newGrouper(dims, sums)
	for _, row := range rows {
		gr.add(row)
	}

	labels := dimensionLabels(dims)
	data := make([]Row, 0, len(gr.groups))
	for _, g := range gr.groups {
		data = append(data, project(g, labels, measures))
	}

	return &Result{
		Outcome: OutcomeGrouped,
		Data:    data,
		Columns: deriveColumns(labels, measures),
		Groups:  gr.groups,
		Status: Status{
			Level:   LevelSuccess,
			Message: fmt.Sprintf("Applied %d dimension(s). Showing %d grouped records.", len(dims), len(data)),
		},
	}, nil
}

// Columns returns the output columns a grouped aggregation would produce for sel
func (e *Engine) Columns(sel Selection) ([]string, error) {
	measures, err := e.selectedMeasures(sel.Measures)
	if err != nil {
		return nil, err
	}
	return deriveColumns(dimensionLabels(sel.ActiveDimensions()), measures), nil
}

// selectedMeasures returns the selected measures in catalog order. MeasureAll
// in the set is ignored, it is derived from the other flags.
func (e *Engine) selectedMeasures(ms MeasureSet) ([]MeasureDef, error) {
	var unknown []string
	for name, on := range ms {
		if !on || name == MeasureAll {
			continue
		}
		if _, ok := e.catalog.Measure(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &AggregationError{Reason: ReasonUnknownMeasure, Detail: unknown}
	}

	selected := make([]MeasureDef, 0, len(e.catalog.Measures))
	for _, m := range e.catalog.Measures {
		if ms.Selected(m.Name) {
			selected = append(selected, m)
		}
	}
	return selected, nil
}

func project(g *Group, labels []string, measures []MeasureDef) Row {
	out := make(Row, len(labels)+len(measures))
	for i, l := range labels {
		out[l] = g.Key.values[i]
	}
	for _, m := range measures {
		if _, taken := out[m.Name]; taken {
			continue
		}
		switch m.Kind {
		case KindCount:
			out[m.Name] = g.Count
		case KindSum:
			out[m.Name] = g.Sums[m.Name]
		case KindPassthrough:
			out[m.Name] = g.passthrough(m)
		}
	}
	return out
}

func dimensionLabels(dims []string) []string {
	labels := make([]string, len(dims))
	for i, d := range dims {
		labels[i] = upperFirst(d)
	}
	return labels
}

func deriveColumns(labels []string, measures []MeasureDef) []string {
	columns := make([]string, 0, len(labels)+len(measures))
	seen := make(map[string]bool, cap(columns))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			columns = append(columns, l)
		}
	}
	for _, m := range measures {
		if !seen[m.Name] {
			seen[m.Name] = true
			columns = append(columns, m.Name)
		}
	}
	return columns
}
