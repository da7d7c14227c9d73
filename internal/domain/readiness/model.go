package readiness

import (
	"sort"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
	"github.com/riskibarqy/lineup-readiness/internal/domain/player"
)

// EvaluatedTeam is a team with its readiness verdict.
type EvaluatedTeam struct {
	RosterID  int
	MatchupID int
	Name      string
	AvatarURL string
	Verdict   Verdict
	Flagged   []FlaggedEntry
}

// Groups buckets evaluated teams by verdict.
type Groups struct {
	OK         []EvaluatedTeam
	Potential  []EvaluatedTeam
	Incomplete []EvaluatedTeam
}

func (g Groups) Total() int {
	return len(g.OK) + len(g.Potential) + len(g.Incomplete)
}

// Evaluate runs EvaluateLineup for every team.
func Evaluate(teams []TeamEntry, players player.Dictionary, byeTeams byeweek.TeamSet, rules ClassificationRules) []EvaluatedTeam {
	out := make([]EvaluatedTeam, 0, len(teams))
	for _, team := range teams {
		verdict, flagged := EvaluateLineup(team.Starters, players, byeTeams, rules)
		out = append(out, EvaluatedTeam{
			RosterID:  team.RosterID,
			MatchupID: team.MatchupID,
			Name:      team.Name,
			AvatarURL: team.AvatarURL,
			Verdict:   verdict,
			Flagged:   flagged,
		})
	}
	return out
}

// Group splits teams by verdict, each group ordered by matchup id then roster id.
func Group(teams []EvaluatedTeam) Groups {
	ordered := append([]EvaluatedTeam(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].MatchupID != ordered[j].MatchupID {
			return ordered[i].MatchupID < ordered[j].MatchupID
		}
		return ordered[i].RosterID < ordered[j].RosterID
	})

	out := Groups{
		OK:         []EvaluatedTeam{},
		Potential:  []EvaluatedTeam{},
		Incomplete: []EvaluatedTeam{},
	}
	for _, team := range ordered {
		switch team.Verdict {
		case VerdictIncomplete:
			out.Incomplete = append(out.Incomplete, team)
		case VerdictPotential:
			out.Potential = append(out.Potential, team)
		default:
			out.OK = append(out.OK, team)
		}
	}
	return out
}
