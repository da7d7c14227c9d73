package readiness

import (
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
)

type statusSet map[string]struct{}

func newStatusSet(values ...string) statusSet {
	out := make(statusSet, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func (s statusSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// ClassificationRules decides which injury and roster statuses map to which tier.
// All keys are lower-case.
type ClassificationRules struct {
	incompleteInjury statusSet
	incompleteStatus statusSet
	potentialInjury  statusSet
}

// DefaultRules returns the standard rule set. PUP counts as INCOMPLETE only when
// pupIncomplete is true.
func DefaultRules(pupIncomplete bool) ClassificationRules {
	rules := ClassificationRules{
		incompleteInjury: newStatusSet("out", "ir", "suspended"),
		incompleteStatus: newStatusSet("ir", "suspension"),
		potentialInjury:  newStatusSet("questionable", "doubtful"),
	}
	if pupIncomplete {
		rules.incompleteInjury["pup"] = struct{}{}
		rules.incompleteStatus["pup"] = struct{}{}
	}
	return rules
}

// Classify maps one player to a tier. Unknown statuses are OK.
func (r ClassificationRules) Classify(p player.Player) Verdict {
	injury := normalizeStatus(p.InjuryStatus)
	status := normalizeStatus(p.Status)

	if r.incompleteInjury.has(injury) || r.incompleteStatus.has(status) {
		return VerdictIncomplete
	}
	if r.potentialInjury.has(injury) {
		return VerdictPotential
	}
	return VerdictOK
}

func normalizeStatus(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
