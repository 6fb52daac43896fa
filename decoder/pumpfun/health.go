package pumpfun

import "github.com/rexbrahh/pool-resolver/health"

// AssessHealth runs the bonding-curve sanity checks. A completed curve has
// migrated to an external venue, which is expected lifecycle rather than a
// defect: when "migrated" is the only issue the verdict stays healthy.
func AssessHealth(s *CurveState, reserveA, reserveB uint64) health.Verdict {
	var issues []health.Issue
	if reserveA == 0 || reserveB == 0 {
		issues = append(issues, health.IssueZeroReserve)
	}
	if s.Complete {
		issues = append(issues, health.IssueMigrated)
	}

	v := health.Classify(issues)
	if len(issues) == 1 && issues[0] == health.IssueMigrated {
		v.Status = health.Healthy
	}
	return v
}
