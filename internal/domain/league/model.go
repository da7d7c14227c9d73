package league

// SeasonState is the provider's view of the current season.
type SeasonState struct {
	Week        int
	DisplayWeek int
	Leg         int
	Season      string
	SeasonType  string
}

const SeasonTypePre = "pre"

// CurrentWeek picks the first positive of week, display week and leg.
func (s SeasonState) CurrentWeek() int {
	for _, candidate := range []int{s.Week, s.DisplayWeek, s.Leg} {
		if candidate > 0 {
			return candidate
		}
	}
	return 1
}

func (s SeasonState) IsPreseason() bool {
	return s.SeasonType == SeasonTypePre
}

// User is one league member.
type User struct {
	UserID      string
	Username    string
	DisplayName string
	TeamName    string
	Avatar      string
}

// Roster links a team slot to its owning user.
type Roster struct {
	RosterID int
	OwnerID  string
}

// Matchup is one team's entry for a given week.
type Matchup struct {
	RosterID  int
	MatchupID int
	Starters  []string
}
