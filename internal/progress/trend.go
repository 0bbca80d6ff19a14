package progress

// Trend is a qualitative label for recent weight development.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Policy constants for the moving-average comparison. The 3-session window
// and the 5% deadband are tuning parameters, not derived requirements.
const (
	trendWindow     = 3
	trendUpFactor   = 1.05
	trendDownFactor = 0.95
)

// Classify compares the average max weight of the last trendWindow sessions
// against the trendWindow sessions immediately before them. A strict
// comparison with the deadband factors means a change of exactly 5% in
// either direction still counts as stable.
//
// This is intentionally a plain two-window comparison, not a regression or
// smoothing filter.
func Classify(sessions []Session) Trend {
	if len(sessions) < 2 {
		return TrendStable
	}

	recentStart := len(sessions) - trendWindow
	if recentStart < 0 {
		recentStart = 0
	}
	olderStart := recentStart - trendWindow
	if olderStart < 0 {
		olderStart = 0
	}

	recent := sessions[recentStart:]
	older := sessions[olderStart:recentStart]
	if len(recent) == 0 || len(older) == 0 {
		return TrendStable
	}

	recentAvg := avgMaxWeight(recent)
	olderAvg := avgMaxWeight(older)

	switch {
	case recentAvg > olderAvg*trendUpFactor:
		return TrendUp
	case recentAvg < olderAvg*trendDownFactor:
		return TrendDown
	default:
		return TrendStable
	}
}

func avgMaxWeight(sessions []Session) float64 {
	var sum float64
	for _, s := range sessions {
		sum += s.MaxWeight
	}
	return sum / float64(len(sessions))
}
