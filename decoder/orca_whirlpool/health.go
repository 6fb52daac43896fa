package orca_whirlpool

import "github.com/rexbrahh/pool-resolver/health"

// AssessHealth runs the whirlpool sanity checks against the decoded state
// and its resolved vault reserves.
func AssessHealth(s *PoolState, reserveA, reserveB uint64) health.Verdict {
	var issues []health.Issue
	if reserveA == 0 || reserveB == 0 {
		issues = append(issues, health.IssueZeroReserve)
	}
	if s.Liquidity != nil && s.Liquidity.Sign() == 0 {
		issues = append(issues, health.IssueZeroLiquidity)
	}
	if !health.FeeBpsInRange(s.FeeBps()) {
		issues = append(issues, health.IssueUnusualFeeRate)
	}
	return health.Classify(issues)
}
