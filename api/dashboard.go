package api

import (
	"sync"
	"time"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
)

// Dashboard is one user's ad-hoc report: a filtered row snapshot, the
// pending dimension and measure choices, and the table currently shown.
// Pending choices only reach the table on Apply.
type Dashboard struct {
	mu sync.Mutex

	id         string
	createdAt  time.Time
	filters    reporting.Filters
	rows       []pivot.Row
	columns    []string
	metrics    reporting.Metrics
	dimensions [pivot.MaxDimensions]string
	measures   pivot.MeasureSet
	view       *pivot.View
	catalog    *pivot.Catalog
}

// DashboardView is the JSON representation of a dashboard
type DashboardView struct {
	ID                string                      `json:"id"`
	CreatedAt         time.Time                   `json:"created_at"`
	Filters           reporting.Filters           `json:"filters"`
	Metrics           reporting.Metrics           `json:"metrics"`
	SourceRowCount    int                         `json:"source_row_count"`
	Dimensions        [pivot.MaxDimensions]string `json:"dimensions"`
	Measures          []string                    `json:"measures"`
	AllSelected       bool                        `json:"all_selected"`
	AppliedDimensions []string                    `json:"applied_dimensions"`
	Columns           []string                    `json:"columns"`
	Data              []pivot.Row                 `json:"data"`
	Status            *pivot.Status               `json:"status,omitempty"`
}

func newDashboard(id string, createdAt time.Time, e *pivot.Engine) *Dashboard {
	c := e.Catalog()
	return &Dashboard{
		id:        id,
		createdAt: createdAt,
		measures:  c.DefaultMeasures(),
		view:      pivot.NewView(e),
		catalog:   c,
	}
}

// load replaces the row snapshot and shows it ungrouped. The pending
// selection is kept.
func (d *Dashboard) load(f reporting.Filters, rows *reporting.RowsResponse, m reporting.Metrics) {
	d.filters = f
	d.rows = rows.Rows
	d.columns = rows.Columns
	d.metrics = m
	d.view.Reset(d.rows, d.columns)
}

func (d *Dashboard) setDimensions(sel pivot.Selection) {
	d.dimensions = sel.Dimensions
}

func (d *Dashboard) toggle(measure string) error {
	return d.measures.Toggle(d.catalog, measure)
}

func (d *Dashboard) apply() pivot.Status {
	sel := pivot.Selection{
		Dimensions: d.dimensions,
		Measures:   d.measures.Clone(),
	}
	return d.view.Apply(d.rows, d.columns, sel)
}

func (d *Dashboard) render() DashboardView {
	v := DashboardView{
		ID:                d.id,
		CreatedAt:         d.createdAt,
		Filters:           d.filters,
		Metrics:           d.metrics,
		SourceRowCount:    len(d.rows),
		Dimensions:        d.dimensions,
		Measures:          d.measures.Names(d.catalog),
		AllSelected:       d.measures.AllSelected(d.catalog),
		AppliedDimensions: d.view.AppliedDimensions(),
		Columns:           d.view.Columns(),
		Data:              d.view.Data(),
	}
	if s := d.view.Status(); s.Message != "" {
		v.Status = &s
	}
	if v.AppliedDimensions == nil {
		v.AppliedDimensions = []string{}
	}
	if v.Columns == nil {
		v.Columns = []string{}
	}
	if v.Data == nil {
		v.Data = []pivot.Row{}
	}
	return v
}

// DashboardStore keeps dashboards in memory, keyed by id. Dashboards unused
// for longer than the ttl are evicted, and once the store holds max
// dashboards the least recently used one makes room for a new one. A zero
// ttl or max disables that limit.
type DashboardStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	items map[string]*storedDashboard
}

type storedDashboard struct {
	dashboard *Dashboard
	lastUsed  time.Time
}

// NewDashboardStore returns an empty store
func NewDashboardStore(ttl time.Duration, max int) *DashboardStore {
	return &DashboardStore{
		ttl:   ttl,
		max:   max,
		items: make(map[string]*storedDashboard),
	}
}

// Add stores a dashboard, evicting expired dashboards first and then the
// least recently used ones while the store is full. It returns the number
// of dashboards evicted.
func (s *DashboardStore) Add(d *Dashboard, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := s.evictExpired(now)
	if s.max > 0 {
		for len(s.items) >= s.max {
			s.evictOldest()
			evicted++
		}
	}

	s.items[d.id] = &storedDashboard{dashboard: d, lastUsed: now}
	return evicted
}

// Get returns the dashboard with the id and marks it as used. Expired
// dashboards are not returned.
func (s *DashboardStore) Get(id string, now time.Time) (*Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.expired(item, now) {
		delete(s.items, id)
		return nil, false
	}
	item.lastUsed = now
	return item.dashboard, true
}

// Delete removes a dashboard, reporting whether it existed
func (s *DashboardStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Len returns the number of stored dashboards
func (s *DashboardStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *DashboardStore) expired(item *storedDashboard, now time.Time) bool {
	return s.ttl > 0 && now.Sub(item.lastUsed) >= s.ttl
}

func (s *DashboardStore) evictExpired(now time.Time) int {
	n := 0
	for id, item := range s.items {
		if s.expired(item, now) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *DashboardStore) evictOldest() {
	var oldestID string
	var oldest time.Time
	for id, item := range s.items {
		if oldestID == "" || item.lastUsed.Before(oldest) {
			oldestID, oldest = id, item.lastUsed
		}
	}
	delete(s.items, oldestID)
}
