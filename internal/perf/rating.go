package perf

// Rating describes how a team's scoring in one half compares to its
// season average for that half.
type Rating string

const (
	Hot     Rating = "hot"
	Cold    Rating = "cold"
	Average Rating = "average"
	NoData  Rating = "no_data"
)

// DefaultThreshold is the deviation band separating Hot/Cold from Average.
const DefaultThreshold = 0.05

// Glyph returns the indicator rendered for this rating in the report.
func (r Rating) Glyph() string {
	switch r {
	case Hot:
		return "🔥"
	case Cold:
		return "❄️"
	case Average:
		return "➖"
	default:
		return "⚪"
	}
}

// Signal reports whether the rating marks a deviation worth highlighting.
// Average and NoData carry no signal.
func (r Rating) Signal() bool {
	return r == Hot || r == Cold
}

// Classify compares an actual half score against a season average using
// the default ±5% band. A non-positive average means we have no usable
// baseline and yields NoData rather than a division by zero.
func Classify(actual, average float64) Rating {
	return ClassifyThreshold(actual, average, DefaultThreshold)
}

// ClassifyThreshold is Classify with a caller-supplied deviation band.
// The band is inclusive on both ends: a deviation of exactly +threshold
// is Hot, exactly -threshold is Cold.
func ClassifyThreshold(actual, average, threshold float64) Rating {
	if average <= 0 {
		return NoData
	}
	delta := (actual - average) / average
	switch {
	case delta >= threshold:
		return Hot
	case delta <= -threshold:
		return Cold
	default:
		return Average
	}
}

// ClassifyLookup classifies against an average that may be absent,
// as produced by a map lookup. Absent averages yield NoData.
func ClassifyLookup(actual, average float64, ok bool) Rating {
	if !ok {
		return NoData
	}
	return Classify(actual, average)
}
