package readiness

import (
	"strings"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
)

const (
	ReasonBye               = "BYE"
	defaultIncompleteReason = "Out"
	defaultPotentialReason  = "Questionable"
)

// FlaggedEntry is one starter that lowered a team's verdict.
type FlaggedEntry struct {
	PlayerID string
	Name     string
	Reason   string
}

// EvaluateLineup scans starters in order and returns the team verdict and the
// flagged starters. The scan stops at the first INCOMPLETE starter; POTENTIAL
// starters accumulate. Starters missing from players are skipped.
func EvaluateLineup(
	starters []string,
	players player.Dictionary,
	byeTeams byeweek.TeamSet,
	rules ClassificationRules,
) (Verdict, []FlaggedEntry) {
	verdict := VerdictOK
	flagged := make([]FlaggedEntry, 0, 2)

	for _, id := range starters {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		if byeweek.IsTeamCode(id) {
			if byeTeams.Contains(id) {
				flagged = append(flagged, FlaggedEntry{PlayerID: id, Name: id + " D/ST", Reason: ReasonBye})
				return MaxVerdict(verdict, VerdictIncomplete), flagged
			}
			continue
		}

		p, ok := players[id]
		if !ok {
			continue
		}

		if byeTeams.Contains(p.Team) {
			flagged = append(flagged, FlaggedEntry{PlayerID: id, Name: p.FullName(), Reason: ReasonBye})
			return MaxVerdict(verdict, VerdictIncomplete), flagged
		}

		tier := rules.Classify(p)
		switch tier {
		case VerdictIncomplete:
			flagged = append(flagged, FlaggedEntry{
				PlayerID: id,
				Name:     p.FullName(),
				Reason:   firstNonEmpty(p.InjuryStatus, p.Status, defaultIncompleteReason),
			})
		case VerdictPotential:
			flagged = append(flagged, FlaggedEntry{
				PlayerID: id,
				Name:     p.FullName(),
				Reason:   firstNonEmpty(p.InjuryStatus, defaultPotentialReason),
			})
		}
		verdict = MaxVerdict(verdict, tier)
		if verdict == VerdictIncomplete {
			return verdict, flagged
		}
	}

	return verdict, flagged
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
