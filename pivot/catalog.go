package pivot

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// MeasureAll is the pseudo-measure that selects or clears every measure at once.
// It is never stored in a MeasureSet.
const MeasureAll = "(All)"

// MeasureKind is the aggregation applied by a measure
type MeasureKind string

// Measure kinds
const (
	KindCount       MeasureKind = "count"
	KindSum         MeasureKind = "sum"
	KindPassthrough MeasureKind = "passthrough"
)

// DimensionOption is a field that may be chosen for a dimension slot
type DimensionOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// MeasureDef declares one measure. Fields lists the row fields read by sum and
// passthrough measures, first present wins.
type MeasureDef struct {
	Name    string      `yaml:"name"    json:"name"`
	Kind    MeasureKind `yaml:"kind"    json:"kind"`
	Fields  []string    `yaml:"fields"  json:"fields,omitempty"`
	Default bool        `yaml:"default" json:"default"`
}

// Catalog holds the dimension and measure options offered to users
type Catalog struct {
	Dimensions []DimensionOption `yaml:"dimensions" json:"dimensions"`
	Measures   []MeasureDef      `yaml:"measures"   json:"measures"`
}

// DefaultCatalog returns the catalog built into the binary
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded catalog: %v", err))
	}
	return c
}

// LoadCatalog decodes and validates a YAML catalog
func LoadCatalog(r io.Reader) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.NewDecoder(r).Decode(c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from path, or returns the default catalog
// when path is empty.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// Validate checks measures are uniquely named, have a known kind and carry
// the fields their kind needs.
func (c *Catalog) Validate() error {
	if len(c.Measures) == 0 {
		return errors.New("catalog has no measures")
	}

	seen := make(map[string]bool, len(c.Measures))
	for _, m := range c.Measures {
		if m.Name == "" || m.Name == MeasureAll {
			return fmt.Errorf("invalid measure name %q", m.Name)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate measure %q", m.Name)
		}
		seen[m.Name] = true

		switch m.Kind {
		case KindCount:
		case KindSum, KindPassthrough:
			if len(m.Fields) == 0 {
				return fmt.Errorf("measure %q needs at least one field", m.Name)
			}
		default:
			return fmt.Errorf("measure %q has unknown kind %q", m.Name, m.Kind)
		}
	}

	for _, d := range c.Dimensions {
		if d.Value == "" {
			return errors.New("dimension option with empty value")
		}
	}

	return nil
}

// Measure returns the named measure definition
func (c *Catalog) Measure(name string) (MeasureDef, bool) {
	for _, m := range c.Measures {
		if m.Name == name {
			return m, true
		}
	}
	return MeasureDef{}, false
}

// HasDimension reports whether field is one of the catalog's dimension options
func (c *Catalog) HasDimension(field string) bool {
	for _, d := range c.Dimensions {
		if d.Value == field {
			return true
		}
	}
	return false
}

// DefaultMeasures returns the measure set selected before any user change
func (c *Catalog) DefaultMeasures() MeasureSet {
	ms := make(MeasureSet, len(c.Measures))
	for _, m := range c.Measures {
		ms[m.Name] = m.Default
	}
	return ms
}
