package analytics

import (
	"math"
	"sort"

	"github.com/skillstats/skillstats/internal/skills"
)

// row is a sanitized record plus its derived depth ratio
type row struct {
	code  string
	label string
	year  int
	basic float64
	above float64
	ratio float64
}

// Compute derives all dashboard sections from the normalized table for the
// requested year range. It is a pure function of its inputs and total: an
// empty range yields a zero-valued result of the same shape, never an error.
func Compute(records []skills.SkillRecord, q Query, regions RegionSet) *Dashboard {
	d := newDashboard(q)

	var countries, regionRows []row // restricted to the requested range
	var countryHistory []row        // full country history, for sequential growth
	var haveInRange, haveEndYear bool
	maxYear := 0

	for _, rec := range records {
		r := row{
			code:  rec.EntityCode,
			label: rec.EntityLabel,
			year:  rec.Year,
			basic: sanitize(rec.PctBasic),
			above: sanitize(rec.PctAboveBasic),
		}
		r.ratio = DepthRatio(r.basic, r.above)

		isRegion := regions.IsRegion(r.code)
		if !isRegion {
			countryHistory = append(countryHistory, r)
		}

		if r.year < q.StartYear || r.year > q.EndYear {
			continue
		}
		if !haveInRange || r.year > maxYear {
			maxYear = r.year
		}
		haveInRange = true
		if r.year == q.EndYear {
			haveEndYear = true
		}

		if isRegion {
			regionRows = append(regionRows, r)
		} else {
			countries = append(countries, r)
		}
	}

	if !haveInRange {
		return d
	}

	// Snapshot sections prefer the requested end year; when it has no data
	// yet they fall back to the latest year actually present in range.
	snapshot := q.EndYear
	if !haveEndYear {
		snapshot = maxYear
	}
	d.SnapshotYear = snapshot

	growth := countryGrowth(countries, countryHistory, q, snapshot)

	var snap []row
	for _, r := range countries {
		if r.year == snapshot {
			snap = append(snap, r)
		}
	}

	// Top-N ranking: stable sort keeps input order on ties
	byAdvanced := append([]row(nil), snap...)
	sort.SliceStable(byAdvanced, func(i, j int) bool {
		return byAdvanced[i].above > byAdvanced[j].above
	})
	for _, r := range byAdvanced[:min(10, len(byAdvanced))] {
		d.TopAdvanced = append(d.TopAdvanced, TopEntry{CountryName: r.label, PctAboveBasic: r.above})
	}

	// Digital divide: tier membership by snapshot proficiency, tier value is
	// the mean growth over the requested range
	byAdvancedAsc := append([]row(nil), snap...)
	sort.SliceStable(byAdvancedAsc, func(i, j int) bool {
		return byAdvancedAsc[i].above < byAdvancedAsc[j].above
	})
	d.DigitalDivide.TopTierAvgGrowth = tierMeanGrowth(byAdvanced[:min(5, len(byAdvanced))], growth)
	d.DigitalDivide.BottomTierAvgGrowth = tierMeanGrowth(byAdvancedAsc[:min(5, len(byAdvancedAsc))], growth)

	// Correlation: drop pure zero-noise rows
	for _, r := range snap {
		if r.basic == 0 && r.above == 0 {
			continue
		}
		d.Correlation = append(d.Correlation, CorrelationPoint{
			CountryName:   r.label,
			PctBasic:      r.basic,
			PctAboveBasic: r.above,
		})
	}

	// Depth leaders: a zero ratio signals "no denominator" and must not crowd
	// out informative entries
	var withDepth []row
	for _, r := range snap {
		if r.ratio != 0 {
			withDepth = append(withDepth, r)
		}
	}
	sort.SliceStable(withDepth, func(i, j int) bool {
		return withDepth[i].ratio > withDepth[j].ratio
	})
	for _, r := range withDepth[:min(10, len(withDepth))] {
		d.DepthLeaders = append(d.DepthLeaders, DepthEntry{CountryName: r.label, SkillDepthRatio: r.ratio})
	}

	computeTrends(d, countries, regionRows)

	return d
}

// countryGrowth computes per-country growth of pct_above_basic. For a real
// range it is the percent change between the requested endpoints, with a
// country missing either endpoint contributing 0. For the degenerate
// single-year form the endpoints coincide, so growth falls back to the
// sequential form: percent change from the country's immediately preceding
// year on record.
func countryGrowth(countries, history []row, q Query, snapshot int) map[string]float64 {
	growth := make(map[string]float64)

	if q.SingleYear() {
		series := make(map[string][]TrendPoint)
		for _, r := range history {
			series[r.code] = append(series[r.code], TrendPoint{Year: r.year, Value: r.above})
		}
		for code, points := range series {
			sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
			rates := SequentialGrowth(points)
			for i, p := range points {
				if p.Year == snapshot {
					growth[code] = rates[i]
				}
			}
		}
		return growth
	}

	start := make(map[string]float64)
	end := make(map[string]float64)
	for _, r := range countries {
		switch r.year {
		case q.StartYear:
			if _, ok := start[r.code]; !ok {
				start[r.code] = r.above
			}
		case q.EndYear:
			if _, ok := end[r.code]; !ok {
				end[r.code] = r.above
			}
		}
	}

	for code, s := range start {
		if e, ok := end[code]; ok {
			growth[code] = RangeGrowth(s, e)
		} else {
			growth[code] = 0
		}
	}
	for code := range end {
		if _, ok := growth[code]; !ok {
			growth[code] = 0
		}
	}

	return growth
}

// tierMeanGrowth averages the growth of the tier members that have a growth
// row. A tier with none reports 0, keeping the response shape stable.
func tierMeanGrowth(tier []row, growth map[string]float64) float64 {
	var values []float64
	for _, r := range tier {
		if g, ok := growth[r.code]; ok {
			values = append(values, g)
		}
	}
	return mean(values)
}

// computeTrends fills the yearly series sections. Frontier and emerging
// cohorts are recomputed independently for every year: membership may change
// year to year.
func computeTrends(d *Dashboard, countries, regionRows []row) {
	byYear := make(map[int][]row)
	var years []int
	for _, r := range countries {
		if _, ok := byYear[r.year]; !ok {
			years = append(years, r.year)
		}
		byYear[r.year] = append(byYear[r.year], r)
	}
	sort.Ints(years)

	for _, year := range years {
		cohort := byYear[year]

		d.GlobalTrend = append(d.GlobalTrend, TrendPoint{Year: year, Value: meanAbove(cohort)})

		frontier := append([]row(nil), cohort...)
		sort.SliceStable(frontier, func(i, j int) bool { return frontier[i].above > frontier[j].above })
		d.FrontierTrend = append(d.FrontierTrend, TrendPoint{
			Year:  year,
			Value: meanAbove(frontier[:min(10, len(frontier))]),
		})

		var emerging []row
		for _, r := range cohort {
			if r.above > 0 {
				emerging = append(emerging, r)
			}
		}
		sort.SliceStable(emerging, func(i, j int) bool { return emerging[i].above < emerging[j].above })
		d.EmergingTrend = append(d.EmergingTrend, TrendPoint{
			Year:  year,
			Value: meanAbove(emerging[:min(10, len(emerging))]),
		})
	}

	// Region series: fewer than 2 distinct years cannot render a trend line
	regionSeries := make(map[string]map[int]float64)
	for _, r := range regionRows {
		if regionSeries[r.label] == nil {
			regionSeries[r.label] = make(map[int]float64)
		}
		if _, ok := regionSeries[r.label][r.year]; !ok {
			regionSeries[r.label][r.year] = r.above
		}
	}
	for label, values := range regionSeries {
		if len(values) < 2 {
			continue
		}
		points := make([]TrendPoint, 0, len(values))
		for year, value := range values {
			points = append(points, TrendPoint{Year: year, Value: value})
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		d.RegionalTrends[label] = points
	}
}

func meanAbove(rows []row) float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.above
	}
	return mean(values)
}

// sanitize re-coerces a stored percentage defensively: a corrupt non-finite
// value counts as missing and becomes 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
