package catalog

// Timeframe is the suggested tracking window for a template.
type Timeframe string

const (
	TimeframeMonthly   Timeframe = "monthly"
	TimeframeQuarterly Timeframe = "quarterly"
	TimeframeBiannual  Timeframe = "biannual"
	TimeframeAnnual    Timeframe = "annual"
)

// Granularity is the reporting cadence derived from a timeframe.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Granularity maps a timeframe onto the cadence a new objective reports at.
// Short windows track daily; anything beyond a quarter tracks monthly.
func (tf Timeframe) Granularity() Granularity {
	switch tf {
	case TimeframeMonthly:
		return GranularityDaily
	case TimeframeQuarterly:
		return GranularityWeekly
	default:
		return GranularityMonthly
	}
}

// Template is a read-only suggested objective sourced from the catalog.
// Templates are immutable for the duration of a wizard session.
type Template struct {
	ID              string    `json:"template_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	SuggestedTarget float64   `json:"suggested_target"`
	Timeframe       Timeframe `json:"timeframe"`
	Priority        int       `json:"priority"`
	MetricType      string    `json:"metric_type"`
	Platforms       []string  `json:"platforms,omitempty"`
	Industries      []string  `json:"industries,omitempty"`
	Source          string    `json:"-"`
}

// AppliesTo reports whether the template targets the given industry.
// A template with no industry tags applies everywhere.
func (t Template) AppliesTo(industry string) bool {
	if len(t.Industries) == 0 {
		return true
	}
	for _, tag := range t.Industries {
		if tag == industry {
			return true
		}
	}
	return false
}

// Catalog is the in-memory template catalog.
type Catalog struct {
	Templates []Template

	byID map[string]Template
}

// Lookup returns the template for the given id, if present.
func (c *Catalog) Lookup(id string) (Template, bool) {
	if c == nil {
		return Template{}, false
	}
	t, ok := c.byID[id]
	return t, ok
}

// Filter returns the templates applicable to an industry, ordered by
// ascending priority then id. An empty industry matches every template.
func (c *Catalog) Filter(industry string) []Template {
	if c == nil {
		return nil
	}
	var out []Template
	for _, t := range c.Templates {
		if industry == "" || t.AppliesTo(industry) {
			out = append(out, t)
		}
	}
	return out
}
