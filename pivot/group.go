package pivot

// GroupKey identifies a group by the resolved values of the active
// dimensions, in slot order. It is comparable and used directly as a map key,
// so values containing any delimiter cannot collide.
type GroupKey struct {
	n      int
	values [MaxDimensions]string
}

func newGroupKey(row Row, dims []string) GroupKey {
	k := GroupKey{n: len(dims)}
	for i, d := range dims {
		k.values[i] = DimensionValue(row, d)
	}
	return k
}

// Values returns the dimension values making up the key
func (k GroupKey) Values() []string {
	out := make([]string, k.n)
	copy(out, k.values[:k.n])
	return out
}

// Group accumulates the rows sharing one GroupKey
type Group struct {
	Key     GroupKey
	Count   int
	Sums    map[string]float64
	Members []Row
}

func newGroup(k GroupKey) *Group {
	return &Group{
		Key:  k,
		Sums: make(map[string]float64),
	}
}

// add folds a row into the group. Only sum measures read the row here,
// passthrough measures are resolved from the first member at projection.
func (g *Group) add(row Row, sums []MeasureDef) {
	g.Count++
	g.Members = append(g.Members, row)
	for _, m := range sums {
		v, _ := FirstPresent(row, m.Fields...)
		g.Sums[m.Name] += ParseNumber(v)
	}
}

// passthrough reads a value once from the group's first member
func (g *Group) passthrough(m MeasureDef) interface{} {
	if len(g.Members) == 0 {
		return 0
	}
	v, ok := FirstPresent(g.Members[0], m.Fields...)
	if !ok {
		return 0
	}
	return v
}

// grouper keeps groups in first-seen order
type grouper struct {
	dims   []string
	sums   []MeasureDef
	index  map[GroupKey]*Group
	groups []*Group
}

func newGrouper(dims []string, sums []MeasureDef) *grouper {
	return &grouper{
		dims:  dims,
		sums:  sums,
		index: make(map[GroupKey]*Group),
	}
}

func (gr *grouper) add(row Row) {
	k := newGroupKey(row, gr.dims)
	g, ok := gr.index[k]
	if !ok {
		g = newGroup(k)
		gr.index[k] = g
		gr.groups = append(gr.groups, g)
	}
	g.add(row, gr.sums)
}
