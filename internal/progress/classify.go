package progress

// Status is the coarse objective health bucket shown on every read path.
type Status string

const (
	StatusAchieved Status = "achieved"
	StatusOnTrack  Status = "on_track"
	StatusAtRisk   Status = "at_risk"
	StatusBehind   Status = "behind"
)

// KPIStatus is the KPI-card vocabulary, distinct from objective status.
type KPIStatus string

const (
	KPIAboveTarget KPIStatus = "above_target"
	KPIOnTarget    KPIStatus = "on_target"
	KPIBelowTarget KPIStatus = "below_target"
	KPICritical    KPIStatus = "critical"
)

// Change is a signed delta between two observations.
type Change struct {
	Absolute float64 `json:"absolute"`
	Percent  float64 `json:"percent"`
}

// ClassifyProgress maps a progress percentage onto a status bucket. Total
// over all inputs; thresholds are evaluated highest first.
func ClassifyProgress(percent float64) Status {
	switch {
	case percent >= 100:
		return StatusAchieved
	case percent >= 80:
		return StatusOnTrack
	case percent >= 60:
		return StatusAtRisk
	default:
		return StatusBehind
	}
}

// ClassifyKPI buckets a KPI reading against its target and the previous
// reading. Below-target values still trending upward stay out of critical.
func ClassifyKPI(current, target, previous float64) KPIStatus {
	if target <= 0 {
		if current >= previous {
			return KPIOnTarget
		}
		return KPICritical
	}
	switch {
	case current >= target:
		return KPIAboveTarget
	case current >= target*0.9:
		return KPIOnTarget
	case current >= previous:
		return KPIBelowTarget
	default:
		return KPICritical
	}
}

// ComputeChange reports the signed absolute and percentage change from
// previous to current. A zero previous value yields 0%, matching the
// division-by-zero policy in Percent.
func ComputeChange(current, previous float64) Change {
	change := Change{Absolute: current - previous}
	if previous != 0 {
		change.Percent = round1((current - previous) / previous * 100)
	}
	return change
}
