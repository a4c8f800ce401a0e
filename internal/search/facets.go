package search

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed facets.yaml
var facetsYAML []byte

type SalaryBounds struct {
	Min  int `yaml:"min" json:"min"`
	Max  int `yaml:"max" json:"max"`
	Step int `yaml:"step" json:"step"`
}

// Catalog lists the known values of every facet, for building search UIs.
type Catalog struct {
	Salary       SalaryBounds `yaml:"salary" json:"salary"`
	RemoteTypes  []string     `yaml:"remoteTypes" json:"remoteTypes"`
	JobTypes     []string     `yaml:"jobTypes" json:"jobTypes"`
	PostedWithin []string     `yaml:"postedWithin" json:"postedWithin"`
	SortKeys     []string     `yaml:"sortKeys" json:"sortKeys"`
	Locations    []string     `yaml:"locations" json:"locations"`
	Experience   []string     `yaml:"experience" json:"experience"`
	Industries   []string     `yaml:"industries" json:"industries"`
	Education    []string     `yaml:"education" json:"education"`
	CompanySizes []string     `yaml:"companySizes" json:"companySizes"`
	Languages    []string     `yaml:"languages" json:"languages"`
	Benefits     []string     `yaml:"benefits" json:"benefits"`
	Skills       []string     `yaml:"skills" json:"skills"`
}

// ParseCatalog decodes a YAML facet catalog.
func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse facet catalog: %w", err)
	}
	if c.Salary.Max <= c.Salary.Min {
		return Catalog{}, fmt.Errorf("parse facet catalog: salary max %d must exceed min %d", c.Salary.Max, c.Salary.Min)
	}
	return c, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(facetsYAML)
	})
	return defaultCatalog, defaultCatalogErr
}
