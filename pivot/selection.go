package pivot

// MaxDimensions is the number of dimension slots a selection holds
const MaxDimensions = 8

// MeasureSet holds the per-measure selection flags. It is the single source
// of truth for measures; the (All) state is always derived from it.
type MeasureSet map[string]bool

// Selection is the set of dimensions and measures a pivot is computed for.
// Empty slots are ignored.
type Selection struct {
	Dimensions [MaxDimensions]string
	Measures   MeasureSet
}

// NewSelection fills the dimension slots in order from dims. It returns an
// AggregationError when there are more dimensions than slots.
func NewSelection(dims []string, measures MeasureSet) (Selection, error) {
	s := Selection{Measures: measures}
	if len(dims) > MaxDimensions {
		return s, &AggregationError{Reason: ReasonTooManyDimensions, Detail: dims}
	}
	copy(s.Dimensions[:], dims)
	return s, nil
}

// ActiveDimensions returns the non-empty slots in slot order. A field chosen
// in more than one slot is kept at its first position only.
func (s Selection) ActiveDimensions() []string {
	active := make([]string, 0, MaxDimensions)
	seen := make(map[string]bool, MaxDimensions)
	for _, d := range s.Dimensions {
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		active = append(active, d)
	}
	return active
}

// Selected reports whether the named measure is selected
func (ms MeasureSet) Selected(name string) bool {
	return ms[name]
}

// AllSelected reports whether every catalog measure is selected
func (ms MeasureSet) AllSelected(c *Catalog) bool {
	for _, m := range c.Measures {
		if !ms.Selected(m.Name) {
			return false
		}
	}
	return true
}

// Toggle flips a measure. Toggling MeasureAll selects every catalog measure
// unless all are already selected, in which case it clears them.
func (ms MeasureSet) Toggle(c *Catalog, name string) error {
	if name == MeasureAll {
		value := !ms.AllSelected(c)
		for _, m := range c.Measures {
			ms[m.Name] = value
		}
		return nil
	}

	if _, ok := c.Measure(name); !ok {
		return &AggregationError{Reason: ReasonUnknownMeasure, Detail: name}
	}
	ms[name] = !ms[name]
	return nil
}

// Clone returns an independent copy of the set
func (ms MeasureSet) Clone() MeasureSet {
	out := make(MeasureSet, len(ms))
	for k, v := range ms {
		out[k] = v
	}
	return out
}

// Names returns the selected measures in catalog order
func (ms MeasureSet) Names(c *Catalog) []string {
	names := make([]string, 0, len(c.Measures))
	for _, m := range c.Measures {
		if ms.Selected(m.Name) {
			names = append(names, m.Name)
		}
	}
	return names
}

// MeasureSetFromNames builds a set with exactly the given measures selected.
// MeasureAll selects every catalog measure.
func MeasureSetFromNames(c *Catalog, names []string) (MeasureSet, error) {
	ms := make(MeasureSet, len(c.Measures))
	for _, m := range c.Measures {
		ms[m.Name] = false
	}
	for _, n := range names {
		if n == MeasureAll {
			for _, m := range c.Measures {
				ms[m.Name] = true
			}
			continue
		}
		if _, ok := c.Measure(n); !ok {
			return nil, &AggregationError{Reason: ReasonUnknownMeasure, Detail: n}
		}
		ms[n] = true
	}
	return ms, nil
}
