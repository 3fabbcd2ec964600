package analytics

// Query selects the year range to aggregate over. The single-year legacy form
// is the degenerate range StartYear == EndYear.
type Query struct {
	StartYear int
	EndYear   int
}

// SingleYear returns true for the degenerate single-year form
func (q Query) SingleYear() bool {
	return q.StartYear == q.EndYear
}

// TopEntry is one ranking row: a country and its above-basic percentage
type TopEntry struct {
	CountryName   string  `json:"country_name"`
	PctAboveBasic float64 `json:"pct_above_basic"`
}

// DepthEntry is one depth-leader row: a country and its skill-depth ratio
type DepthEntry struct {
	CountryName     string  `json:"country_name"`
	SkillDepthRatio float64 `json:"skill_depth_ratio"`
}

// CorrelationPoint pairs both proficiency levels for one country at the
// snapshot year
type CorrelationPoint struct {
	CountryName   string  `json:"country_name"`
	PctBasic      float64 `json:"pct_basic"`
	PctAboveBasic float64 `json:"pct_above_basic"`
}

// DigitalDivide reports the mean growth within the highest- and
// lowest-proficiency country tiers
type DigitalDivide struct {
	TopTierAvgGrowth    float64 `json:"top_tier_avg_growth"`
	BottomTierAvgGrowth float64 `json:"bottom_tier_avg_growth"`
}

// TrendPoint is one point of a yearly series
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Dashboard is the aggregate result for one query. Every section is always
// present; data availability never changes the shape.
type Dashboard struct {
	StartYear      int                     `json:"start_year"`
	EndYear        int                     `json:"end_year"`
	SnapshotYear   int                     `json:"snapshot_year"`
	TopAdvanced    []TopEntry              `json:"top_advanced"`
	DigitalDivide  DigitalDivide           `json:"digital_divide"`
	Correlation    []CorrelationPoint      `json:"correlation"`
	DepthLeaders   []DepthEntry            `json:"depth_leaders"`
	GlobalTrend    []TrendPoint            `json:"global_trend"`
	FrontierTrend  []TrendPoint            `json:"frontier_trend"`
	EmergingTrend  []TrendPoint            `json:"emerging_trend"`
	RegionalTrends map[string][]TrendPoint `json:"regional_trends"`
}

// newDashboard returns the zero-valued result shape for a query
func newDashboard(q Query) *Dashboard {
	return &Dashboard{
		StartYear:      q.StartYear,
		EndYear:        q.EndYear,
		TopAdvanced:    []TopEntry{},
		Correlation:    []CorrelationPoint{},
		DepthLeaders:   []DepthEntry{},
		GlobalTrend:    []TrendPoint{},
		FrontierTrend:  []TrendPoint{},
		EmergingTrend:  []TrendPoint{},
		RegionalTrends: map[string][]TrendPoint{},
	}
}
