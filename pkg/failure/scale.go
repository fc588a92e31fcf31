// Package failure produces reduced subgraphs that simulate partial firm
// failures: uniform random keep/drop at a chosen granularity, and iterative
// incremental deletion for breakdown searches. Strategies always operate on
// copies; the canonical graph is never mutated.
package failure

import (
	"fmt"

	"github.com/dd0wney/cluso-resilience/pkg/supply"
)

// Scale is the granularity at which failures are injected.
type Scale string

const (
	ScaleFirm            Scale = "firm"
	ScaleCountry         Scale = "country"
	ScaleIndustry        Scale = "industry"
	ScaleCountryIndustry Scale = "country-industry"
)

// Valid reports whether the scale is one of the supported granularities.
func (s Scale) Valid() bool {
	switch s {
	case ScaleFirm, ScaleCountry, ScaleIndustry, ScaleCountryIndustry:
		return true
	}
	return false
}

// Plural returns the plural unit name used in result column labels.
func (s Scale) Plural() string {
	switch s {
	case ScaleFirm:
		return "firms"
	case ScaleCountry:
		return "countries"
	case ScaleIndustry:
		return "industries"
	case ScaleCountryIndustry:
		return "country-industries"
	}
	return string(s)
}

// CategoryOf returns the category value of a node under this scale. At the
// firm scale every node is its own category.
func (s Scale) CategoryOf(n *supply.Node) string {
	switch s {
	case ScaleCountry:
		return n.Country
	case ScaleIndustry:
		return n.Industry
	case ScaleCountryIndustry:
		return fmt.Sprintf("%s|%s", n.Country, n.Industry)
	}
	return n.ID
}
