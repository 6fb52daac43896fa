// Package health carries the shared pool health verdict shape. Each protocol
// package contributes its own assessor; the classification rule is common.
package health

import "strings"

// Status is the coarse pool health classification.
type Status string

const (
	Healthy  Status = "healthy"
	Warning  Status = "warning"
	Critical Status = "critical"
)

// Issue names a single problem an assessor observed.
type Issue string

const (
	IssueZeroReserve    Issue = "zero reserve"
	IssueZeroLiquidity  Issue = "zero liquidity"
	IssueUnusualFeeRate Issue = "unusual fee rate"
	IssueMigrated       Issue = "migrated"
)

// Verdict is the deterministic outcome of a health assessment: the ordered
// issue list plus the status derived from it.
type Verdict struct {
	Status Status
	Issues []Issue
}

// Classify derives a status from an issue count: none is healthy, one is a
// warning, two or more are critical. Protocol assessors apply their own
// overrides before calling this.
func Classify(issues []Issue) Verdict {
	v := Verdict{Issues: issues}
	switch len(issues) {
	case 0:
		v.Status = Healthy
	case 1:
		v.Status = Warning
	default:
		v.Status = Critical
	}
	return v
}

// FeeBpsInRange reports whether a fee rate sits inside the plausible
// [1, 10000] basis-point window.
func FeeBpsInRange(bps uint32) bool {
	return bps >= 1 && bps <= 10000
}

// String renders the verdict as status text, e.g.
// "warning: zero reserve" or "healthy".
func (v Verdict) String() string {
	if len(v.Issues) == 0 {
		return string(v.Status)
	}
	parts := make([]string, len(v.Issues))
	for i, issue := range v.Issues {
		parts[i] = string(issue)
	}
	return string(v.Status) + ": " + strings.Join(parts, "; ")
}
