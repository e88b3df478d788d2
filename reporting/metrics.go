package reporting

import "fmt"

// Metrics are the headline figures shown above an ad-hoc report
type Metrics struct {
	Individuals          int64   `json:"individuals"`
	Population           int64   `json:"population"`
	PerCapitaRate        string  `json:"per_capita_rate"`
	TotalAuthorizedHours float64 `json:"total_authorized_hours"`
	AverageHours         float64 `json:"average_hours"`
}

// NewMetrics derives the headline figures from stats and the population the
// per-capita rate is computed against
func NewMetrics(s *Stats, population int64) Metrics {
	m := Metrics{
		Population:    population,
		PerCapitaRate: "0.00",
	}
	if s == nil {
		return m
	}

	m.Individuals = s.TotalRecords
	m.TotalAuthorizedHours = s.TotalHours
	m.AverageHours = s.AvgHours
	if s.TotalRecords > 0 && population > 0 {
		m.PerCapitaRate = fmt.Sprintf("%.2f", float64(s.TotalRecords)/float64(population)*100)
	}
	return m
}
