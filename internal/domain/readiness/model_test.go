package readiness

import (
	"testing"

	"github.com/riskibarqy/lineup-readiness/internal/domain/byeweek"
)

func TestEvaluateAndGroup_CountsMatchEntries(t *testing.T) {
	t.Parallel()

	teams := []TeamEntry{
		{RosterID: 4, MatchupID: 2, Name: "D", Starters: []string{"4984"}},
		{RosterID: 1, MatchupID: 1, Name: "A", Starters: []string{"KC", "1023"}},
		{RosterID: 2, MatchupID: 1, Name: "B", Starters: []string{"7564", "6794", "4984"}},
		{RosterID: 3, MatchupID: 2, Name: "C", Starters: []string{"9001"}},
		{RosterID: 5, MatchupID: 3, Name: "E", Starters: []string{"8146"}},
	}

	evaluated := Evaluate(teams, testPlayers(), byeweek.NewTeamSet("KC"), DefaultRules(true))
	if len(evaluated) != len(teams) {
		t.Fatalf("expected one evaluated team per entry, got %d", len(evaluated))
	}

	groups := Group(evaluated)
	if groups.Total() != len(teams) {
		t.Fatalf("group total=%d want=%d", groups.Total(), len(teams))
	}
	if len(groups.Incomplete) != 2 || len(groups.Potential) != 1 || len(groups.OK) != 2 {
		t.Fatalf("unexpected group sizes ok=%d potential=%d incomplete=%d",
			len(groups.OK), len(groups.Potential), len(groups.Incomplete))
	}
	if groups.OK[0].Name != "C" || groups.OK[1].Name != "D" {
		t.Fatalf("expected OK group ordered by matchup then roster, got %s,%s", groups.OK[0].Name, groups.OK[1].Name)
	}
	if groups.Incomplete[0].Name != "A" || groups.Incomplete[0].Flagged[0].Name != "KC D/ST" {
		t.Fatalf("unexpected first incomplete team: %+v", groups.Incomplete[0])
	}
	if groups.Potential[0].Name != "B" || len(groups.Potential[0].Flagged) != 2 {
		t.Fatalf("unexpected potential team: %+v", groups.Potential[0])
	}
}

func TestGroup_EmptyInputYieldsEmptyGroups(t *testing.T) {
	t.Parallel()

	groups := Group(nil)
	if groups.OK == nil || groups.Potential == nil || groups.Incomplete == nil {
		t.Fatalf("expected non-nil groups")
	}
	if groups.Total() != 0 {
		t.Fatalf("expected empty groups, got %d", groups.Total())
	}
}
