package health

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		issues []Issue
		want   Status
	}{
		{"no issues", nil, Healthy},
		{"one issue", []Issue{IssueZeroReserve}, Warning},
		{"two issues", []Issue{IssueZeroReserve, IssueZeroLiquidity}, Critical},
		{"three issues", []Issue{IssueZeroReserve, IssueZeroLiquidity, IssueUnusualFeeRate}, Critical},
	}

	for _, tc := range cases {
		v := Classify(tc.issues)
		if v.Status != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, v.Status)
		}
		if len(v.Issues) != len(tc.issues) {
			t.Fatalf("%s: issue list not preserved", tc.name)
		}
	}
}

func TestFeeBpsInRange(t *testing.T) {
	if FeeBpsInRange(0) {
		t.Fatal("0 bps should be out of range")
	}
	if !FeeBpsInRange(1) || !FeeBpsInRange(10000) {
		t.Fatal("bounds should be in range")
	}
	if FeeBpsInRange(10001) {
		t.Fatal("10001 bps should be out of range")
	}
}

func TestVerdictString(t *testing.T) {
	if got := Classify(nil).String(); got != "healthy" {
		t.Fatalf("expected healthy, got %q", got)
	}
	v := Classify([]Issue{IssueZeroReserve, IssueZeroLiquidity})
	want := "critical: zero reserve; zero liquidity"
	if v.String() != want {
		t.Fatalf("expected %q, got %q", want, v.String())
	}
}
