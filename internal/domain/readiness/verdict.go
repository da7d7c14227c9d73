package readiness

// Verdict is a team's lineup readiness tier.
type Verdict string

const (
	VerdictOK         Verdict = "OK"
	VerdictPotential  Verdict = "POTENTIAL"
	VerdictIncomplete Verdict = "INCOMPLETE"
)

// Severity orders verdicts: OK < POTENTIAL < INCOMPLETE.
func (v Verdict) Severity() int {
	switch v {
	case VerdictIncomplete:
		return 2
	case VerdictPotential:
		return 1
	default:
		return 0
	}
}

// MaxVerdict returns the more severe of a and b.
func MaxVerdict(a, b Verdict) Verdict {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}
